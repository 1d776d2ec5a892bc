package storage

import (
	"errors"
	"fmt"

	"todolist-web/internal/models"
)

var (
	ErrListNotFound = errors.New("todo list not found")
	ErrTodoNotFound = errors.New("todo not found")
)

// Provider defines the list and todo operations the request handlers use.
// Callers validate input before invoking any mutating operation.
type Provider interface {
	// List operations
	AllLists() ([]*models.List, error)
	CreateList(name string) error
	FindList(id int) (*models.List, error)
	UpdateList(id int, name string) error
	DeleteList(id int) error

	// Todo operations
	CreateTodo(listID int, name string) error
	DeleteTodo(listID, todoID int) error
	UpdateTodoStatus(listID, todoID int, completed bool) error
	CompleteAllTodos(listID int) error
}

// Error wraps a failure of the backing store (connection, statement)
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
