package storage

import (
	"sync"

	"todolist-web/internal/models"
)

// ListsKey is the session key holding the list collection
const ListsKey = "lists"

// Scope is the per-caller key/value store the session backend lives in
type Scope interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// collection is what the session holds under ListsKey. The high-water
// marks keep ids from being handed out twice after the newest record is
// deleted. Requests of one session share the collection, so every
// SessionStorage method holds mu.
type collection struct {
	mu         sync.Mutex
	lists      []*models.List
	nextListID int
	nextTodoID map[int]int
}

// SessionStorage keeps lists in the caller's session. Data lives only as
// long as the session does. Values returned by FindList and AllLists are
// the stored records themselves, not copies.
type SessionStorage struct {
	data *collection
}

var _ Provider = (*SessionStorage)(nil)

// NewSessionStorage creates a session backed storage, initialising the
// list collection when the session has none yet
func NewSessionStorage(scope Scope) *SessionStorage {
	value, _ := scope.Get(ListsKey)
	data, ok := value.(*collection)
	if !ok {
		data = &collection{
			lists:      []*models.List{},
			nextTodoID: make(map[int]int),
		}
		scope.Set(ListsKey, data)
	}
	return &SessionStorage{data: data}
}

// AllLists returns every list in insertion order
func (s *SessionStorage) AllLists() ([]*models.List, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	return s.data.lists, nil
}

// CreateList appends a new empty list
func (s *SessionStorage) CreateList(name string) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	ids := make([]int, len(s.data.lists))
	for i, list := range s.data.lists {
		ids[i] = list.ID
	}

	id := nextID(ids, s.data.nextListID)
	s.data.nextListID = id + 1
	s.data.lists = append(s.data.lists, &models.List{
		ID:    id,
		Name:  name,
		Todos: []models.Todo{},
	})
	return nil
}

// FindList returns the stored list with the given id
func (s *SessionStorage) FindList(id int) (*models.List, error) {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	return s.findList(id)
}

func (s *SessionStorage) findList(id int) (*models.List, error) {
	for _, list := range s.data.lists {
		if list.ID == id {
			return list, nil
		}
	}
	return nil, ErrListNotFound
}

// UpdateList renames a list
func (s *SessionStorage) UpdateList(id int, name string) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	list, err := s.findList(id)
	if err != nil {
		return err
	}
	list.Name = name
	return nil
}

// DeleteList removes a list together with its todos
func (s *SessionStorage) DeleteList(id int) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	kept := make([]*models.List, 0, len(s.data.lists))
	for _, list := range s.data.lists {
		if list.ID != id {
			kept = append(kept, list)
		}
	}
	if len(kept) == len(s.data.lists) {
		return ErrListNotFound
	}
	s.data.lists = kept
	delete(s.data.nextTodoID, id)
	return nil
}

// CreateTodo appends an open todo to a list
func (s *SessionStorage) CreateTodo(listID int, name string) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	list, err := s.findList(listID)
	if err != nil {
		return err
	}

	ids := make([]int, len(list.Todos))
	for i, todo := range list.Todos {
		ids[i] = todo.ID
	}

	id := nextID(ids, s.data.nextTodoID[listID])
	s.data.nextTodoID[listID] = id + 1
	list.Todos = append(list.Todos, models.Todo{
		ID:        id,
		Name:      name,
		Completed: false,
	})
	return nil
}

// DeleteTodo removes a todo from a list
func (s *SessionStorage) DeleteTodo(listID, todoID int) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	list, err := s.findList(listID)
	if err != nil {
		return err
	}

	kept := make([]models.Todo, 0, len(list.Todos))
	for _, todo := range list.Todos {
		if todo.ID != todoID {
			kept = append(kept, todo)
		}
	}
	if len(kept) == len(list.Todos) {
		return ErrTodoNotFound
	}
	list.Todos = kept
	return nil
}

// UpdateTodoStatus marks a todo completed or open
func (s *SessionStorage) UpdateTodoStatus(listID, todoID int, completed bool) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	list, err := s.findList(listID)
	if err != nil {
		return err
	}

	todo := list.FindTodo(todoID)
	if todo == nil {
		return ErrTodoNotFound
	}
	todo.Completed = completed
	return nil
}

// CompleteAllTodos marks every todo in a list completed
func (s *SessionStorage) CompleteAllTodos(listID int) error {
	s.data.mu.Lock()
	defer s.data.mu.Unlock()

	list, err := s.findList(listID)
	if err != nil {
		return err
	}

	for i := range list.Todos {
		list.Todos[i].Completed = true
	}
	return nil
}

// nextID returns one past the highest id, or 0 for an empty collection,
// but never less than floor.
func nextID(ids []int, floor int) int {
	next := 0
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	if next < floor {
		return floor
	}
	return next
}
