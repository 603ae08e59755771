package models

import "strings"

type Card struct {
	UUID    string `json:"uuid" db:"uuid"`
	Name    string `json:"name" db:"name"`
	Text    string `json:"text" db:"text"`
	SetCode string `json:"setCode" db:"set_code"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// UnescapeText turns every literal two-character `\n` sequence in the card
// text into a real newline.
func (c *Card) UnescapeText() {
	c.Text = strings.ReplaceAll(c.Text, `\n`, "\n")
}
