package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2024-05-01")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back.Time))
}

func TestDateRejectsMalformed(t *testing.T) {
	_, err := ParseDate("05/01/2024")
	assert.Error(t, err)

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 5, 1, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-01", d.String())

	assert.Error(t, d.Scan(42))
}
