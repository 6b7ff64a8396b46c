package jsonutil

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexibleFloat decodes a JSON number or a numeric string. Model output and
// browser forms both send amounts as "1200" as often as 1200.
type FlexibleFloat struct {
	Value float64
	Set   bool
}

func (f *FlexibleFloat) UnmarshalJSON(raw []byte) error {
	*f = FlexibleFloat{}
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		f.Value, f.Set = num, true
		return nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return fmt.Errorf("expected number, got %s", s)
	}
	str = strings.TrimSpace(strings.ReplaceAll(str, ",", ""))
	str = strings.TrimPrefix(str, "$")
	if str == "" {
		return nil
	}
	num, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
		return fmt.Errorf("expected number, got %q", str)
	}
	f.Value, f.Set = num, true
	return nil
}

func (f FlexibleFloat) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns a pointer to the value, or nil when nothing was decoded.
func (f FlexibleFloat) Ptr() *float64 {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}
