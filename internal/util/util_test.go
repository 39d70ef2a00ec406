package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no quotes", "blue", "blue"},
		{"double quoted", `"blue"`, "blue"},
		{"single quotes only", "'blue'", "'blue'"},
		{"quotes in middle", `bl"ue`, `bl"ue`},
		{"only quotes", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimQuotes(tt.input))
		})
	}
}

func TestFixEscapeQuotes(t *testing.T) {
	assert.Equal(t, `{"letter":"A"}`, FixEscapeQuotes(`{""letter"":""A""}`))
	assert.Equal(t, "plain", FixEscapeQuotes("plain"))
}

func TestUnquoteArg(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"letter":""}`, `{"letter":""}`},
		{"spreadsheet quoted json", `"{""letter"":""A""}"`, `{"letter":"A"}`},
		{"quoted scalar", ` "red" `, "red"},
		{"lone quote", `"`, `"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnquoteArg(tt.input))
		})
	}
}
