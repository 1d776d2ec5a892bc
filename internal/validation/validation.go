// Package validation holds the input rules applied before any storage call.
package validation

import (
	"fmt"
	"unicode/utf8"

	"todolist-web/internal/models"
)

const (
	MinNameLength = 1
	MaxNameLength = 100
)

// Error is returned when user input breaks a naming rule.
// Its message is meant to be shown to the user as is.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ValidateListName checks the length of name and that no existing list
// already uses it. The comparison is case-sensitive.
func ValidateListName(name string, existing []*models.List) error {
	if !validLength(name) {
		return &Error{Field: "name", Message: "List name must have from 1 to 100 characters."}
	}
	for _, list := range existing {
		if list.Name == name {
			return &Error{Field: "name", Message: fmt.Sprintf("List name \"%s\" is already in use.", name)}
		}
	}
	return nil
}

// ValidateTodoName checks the length of a todo name
func ValidateTodoName(name string) error {
	if !validLength(name) {
		return &Error{Field: "name", Message: "Todo name must have from 1 to 100 characters."}
	}
	return nil
}

func validLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= MinNameLength && n <= MaxNameLength
}
