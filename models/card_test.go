package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardUnescapeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single", in: `Deal 3\ndamage`, want: "Deal 3\ndamage"},
		{name: "several", in: `a\nb\nc`, want: "a\nb\nc"},
		{name: "none", in: "Deal 2 damage", want: "Deal 2 damage"},
		{name: "trailing backslash", in: `end\`, want: `end\`},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Card{Text: tt.in}
			c.UnescapeText()
			assert.Equal(t, tt.want, c.Text)
			assert.NotContains(t, c.Text, `\n`)
		})
	}
}

func TestCardJSONFieldNames(t *testing.T) {
	payload, err := json.Marshal(Card{UUID: "A1", Name: "Bolt", Text: `Deal 3\ndamage`, SetCode: "M10"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"uuid":"A1","name":"Bolt","text":"Deal 3\\ndamage","setCode":"M10"}`, string(payload))
}
