package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"markdown fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"leading prose", "Here is the breakdown:\n{\"genre\":\"Drama\"} hope it helps", `{"genre":"Drama"}`},
		{"think preamble", "<think>hmm {not json}</think>{\"ok\":true}", `{"ok":true}`},
		{"braces inside strings", `{"reply":"use {curly} braces"}`, `{"reply":"use {curly} braces"}`},
		{"nested", `x {"a":{"b":[1,2]}} y`, `{"a":{"b":[1,2]}}`},
		{"array", `result: [1, 2]`, `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractJSONFailures(t *testing.T) {
	for _, input := range []string{"", "no json here", `{"unterminated": `} {
		_, err := ExtractJSON(input)
		assert.Error(t, err, input)
	}
}

func TestParseJSONResponse(t *testing.T) {
	type reply struct {
		Reply string `json:"reply"`
	}

	got, err := ParseJSONResponse[reply]("```\n{\"reply\":\"done\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "done", got.Reply)

	_, err = ParseJSONResponse[reply](`["not", "an", "object"]`)
	assert.Error(t, err)
}
