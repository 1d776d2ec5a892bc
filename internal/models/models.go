package models

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Todo represents a single item within a list
type Todo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// List represents a named, ordered collection of todos
type List struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Todos []Todo `json:"todos"`
}

// TodosCount returns the number of todos in the list
func (l *List) TodosCount() int {
	return len(l.Todos)
}

// RemainingCount returns the number of todos not yet completed
func (l *List) RemainingCount() int {
	count := 0
	for _, todo := range l.Todos {
		if !todo.Completed {
			count++
		}
	}
	return count
}

// IsComplete reports whether the list has todos and all of them are done.
// An empty list is never complete.
func (l *List) IsComplete() bool {
	return len(l.Todos) > 0 && l.RemainingCount() == 0
}

// FindTodo returns the todo with the given id, or nil
func (l *List) FindTodo(id int) *Todo {
	for i := range l.Todos {
		if l.Todos[i].ID == id {
			return &l.Todos[i]
		}
	}
	return nil
}

// SortLists returns the lists with incomplete ones first, keeping the
// relative order within each group.
func SortLists(lists []*List) []*List {
	sorted := make([]*List, len(lists))
	copy(sorted, lists)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].IsComplete() && sorted[j].IsComplete()
	})
	return sorted
}

// SortTodos returns the todos with open ones first, keeping the relative
// order within each group.
func SortTodos(todos []Todo) []Todo {
	sorted := make([]Todo, len(todos))
	copy(sorted, todos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].Completed && sorted[j].Completed
	})
	return sorted
}

// CreateListRequest represents the request to create a new list.
// Browser forms post list_name; JSON clients send name.
type CreateListRequest struct {
	Name string `json:"name" form:"list_name"`
}

// UpdateListRequest represents the request to rename a list
type UpdateListRequest struct {
	Name string `json:"name" form:"list_name"`
}

// CreateTodoRequest represents the request to add a todo to a list
type CreateTodoRequest struct {
	Name string `json:"name" form:"todo"`
}

// UpdateTodoStatusRequest represents the request to complete or reopen a todo
type UpdateTodoStatusRequest struct {
	Completed StatusParam `json:"completed" form:"completed"`
}

// StatusParam is the raw completed value of a status update. Only "true"
// completes a todo, anything else reopens it.
type StatusParam string

// UnmarshalJSON accepts a JSON boolean as well as a string
func (p *StatusParam) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*p = StatusParam(strconv.FormatBool(b))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = StatusParam(s)
	return nil
}

// Completed reports whether the value asks for a completed todo
func (p StatusParam) Completed() bool {
	return p == "true"
}

// Flash carries the one-shot messages stored in the caller's session
type Flash struct {
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}

// Empty reports whether there is nothing to show
func (f Flash) Empty() bool {
	return f.Error == "" && f.Success == ""
}

// ListView is the rendered form of a list
type ListView struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Todos          []Todo `json:"todos"`
	TodosCount     int    `json:"todosCount"`
	RemainingCount int    `json:"remainingCount"`
	Complete       bool   `json:"complete"`
}

// NewListView builds the view of a list with its todos ordered open-first
func NewListView(l *List) ListView {
	todos := SortTodos(l.Todos)
	return ListView{
		ID:             l.ID,
		Name:           l.Name,
		Todos:          todos,
		TodosCount:     l.TodosCount(),
		RemainingCount: l.RemainingCount(),
		Complete:       l.IsComplete(),
	}
}

// ListsResponse is the payload for GET /lists
type ListsResponse struct {
	Lists []ListView `json:"lists"`
	Flash *Flash     `json:"flash,omitempty"`
}

// ListResponse is the payload for GET /lists/:id
type ListResponse struct {
	List  ListView `json:"list"`
	Flash *Flash   `json:"flash,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
