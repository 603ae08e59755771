package service

import (
	"errors"
	"unicode/utf8"
)

var ErrNameTooShort = errors.New("search name too short")

type SearchPolicy struct {
	MinLength       int
	TooShortMessage string
}

func DefaultSearchPolicy() SearchPolicy {
	return SearchPolicy{
		MinLength:       3,
		TooShortMessage: "Le mot n'est pas assez long",
	}
}

// NameTooShortError carries the user-facing message for a rejected search.
type NameTooShortError struct {
	Name    string
	Message string
}

func (e *NameTooShortError) Error() string {
	return e.Message
}

func (e *NameTooShortError) Is(target error) bool {
	return target == ErrNameTooShort
}

// Check rejects names with fewer than MinLength characters.
func (p SearchPolicy) Check(name string) error {
	if utf8.RuneCountInString(name) >= p.MinLength {
		return nil
	}

	msg := p.TooShortMessage
	if msg == "" {
		msg = ErrNameTooShort.Error()
	}
	return &NameTooShortError{Name: name, Message: msg}
}
