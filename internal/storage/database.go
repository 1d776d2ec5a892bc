package storage

import (
	"database/sql"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"todolist-web/internal/models"
)

// DatabaseStorage keeps lists in the lists/todos tables. Every operation is
// one parameterized statement, except DeleteList which issues two without
// a transaction.
type DatabaseStorage struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

var _ Provider = (*DatabaseStorage)(nil)

type listRow struct {
	ID   int
	Name string
}

type todoRow struct {
	ID        int
	Name      string
	Completed completedFlag
}

// NewDatabaseStorage creates a database backed storage. db is normally
// bound to a single connection for the current request. log may be nil.
func NewDatabaseStorage(db *gorm.DB, log logrus.FieldLogger) *DatabaseStorage {
	return &DatabaseStorage{db: db, log: log}
}

// AllLists loads every list, then the todos of each list with one query per list
func (s *DatabaseStorage) AllLists() ([]*models.List, error) {
	var rows []listRow
	err := s.query("all lists", "SELECT id, name FROM lists ORDER BY id", nil, func(r *sql.Rows) error {
		var row listRow
		if err := r.Scan(&row.ID, &row.Name); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	lists := make([]*models.List, 0, len(rows))
	for _, row := range rows {
		todos, err := s.listTodos(row.ID)
		if err != nil {
			return nil, err
		}
		lists = append(lists, &models.List{ID: row.ID, Name: row.Name, Todos: todos})
	}
	return lists, nil
}

// CreateList inserts a new list; the database assigns the id
func (s *DatabaseStorage) CreateList(name string) error {
	_, err := s.exec("create list", "INSERT INTO lists (name) VALUES (?)", name)
	return err
}

// FindList loads a list and its todos
func (s *DatabaseStorage) FindList(id int) (*models.List, error) {
	var names []string
	err := s.query("find list", "SELECT DISTINCT name FROM lists WHERE id = ?", []any{id}, func(r *sql.Rows) error {
		var name string
		if err := r.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrListNotFound
	}

	todos, err := s.listTodos(id)
	if err != nil {
		return nil, err
	}
	return &models.List{ID: id, Name: names[0], Todos: todos}, nil
}

// UpdateList renames a list
func (s *DatabaseStorage) UpdateList(id int, name string) error {
	affected, err := s.exec("update list", "UPDATE lists SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrListNotFound
	}
	return nil
}

// DeleteList deletes the list's todos, then the list. A failure between
// the two statements leaves the todo rows gone and the list in place.
func (s *DatabaseStorage) DeleteList(id int) error {
	if _, err := s.exec("delete list todos", "DELETE FROM todos WHERE list_id = ?", id); err != nil {
		return err
	}

	affected, err := s.exec("delete list", "DELETE FROM lists WHERE id = ?", id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrListNotFound
	}
	return nil
}

// CreateTodo inserts an open todo into a list
func (s *DatabaseStorage) CreateTodo(listID int, name string) error {
	_, err := s.exec("create todo",
		"INSERT INTO todos (list_id, name, completed) VALUES (?, ?, ?)",
		listID, name, completedFlag(false))
	return err
}

// DeleteTodo removes a todo from a list
func (s *DatabaseStorage) DeleteTodo(listID, todoID int) error {
	affected, err := s.exec("delete todo", "DELETE FROM todos WHERE list_id = ? AND id = ?", listID, todoID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// UpdateTodoStatus marks a todo completed or open
func (s *DatabaseStorage) UpdateTodoStatus(listID, todoID int, completed bool) error {
	affected, err := s.exec("update todo status",
		"UPDATE todos SET completed = ? WHERE list_id = ? AND id = ?",
		completedFlag(completed), listID, todoID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// CompleteAllTodos marks every todo in a list completed
func (s *DatabaseStorage) CompleteAllTodos(listID int) error {
	_, err := s.exec("complete all todos", "UPDATE todos SET completed = ? WHERE list_id = ?", completedFlag(true), listID)
	return err
}

func (s *DatabaseStorage) listTodos(listID int) ([]models.Todo, error) {
	todos := make([]models.Todo, 0)
	err := s.query("list todos", "SELECT id, name, completed FROM todos WHERE list_id = ? ORDER BY id", []any{listID}, func(r *sql.Rows) error {
		var row todoRow
		if err := r.Scan(&row.ID, &row.Name, &row.Completed); err != nil {
			return err
		}
		todos = append(todos, models.Todo{
			ID:        row.ID,
			Name:      row.Name,
			Completed: bool(row.Completed),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// query runs a statement and hands each result row to scan. The result
// set is closed before returning so the connection is free for the next
// statement.
func (s *DatabaseStorage) query(op, stmt string, params []any, scan func(*sql.Rows) error) error {
	s.logStatement(stmt, params)
	rows, err := s.db.Raw(stmt, params...).Rows()
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return &Error{Op: op, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}

func (s *DatabaseStorage) exec(op, stmt string, params ...any) (int64, error) {
	s.logStatement(stmt, params)
	result := s.db.Exec(stmt, params...)
	if result.Error != nil {
		return 0, &Error{Op: op, Err: result.Error}
	}
	return result.RowsAffected, nil
}

func (s *DatabaseStorage) logStatement(stmt string, params []any) {
	if s.log == nil {
		return
	}
	s.log.WithFields(logrus.Fields{
		"sql":    stmt,
		"params": params,
	}).Info("Executing statement")
}
