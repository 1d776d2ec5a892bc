package storage

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// completedFlag reads the todos.completed column whatever shape the driver
// hands it back in: a real boolean, a 't'/'f' text flag or an integer.
type completedFlag bool

// Scan implements sql.Scanner
func (f *completedFlag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = false
	case bool:
		*f = completedFlag(v)
	case int64:
		*f = v != 0
	case string:
		return f.parse(v)
	case []byte:
		return f.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into completed flag", src)
	}
	return nil
}

func (f *completedFlag) parse(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "1", "y", "yes":
		*f = true
	case "f", "false", "0", "n", "no", "":
		*f = false
	default:
		return fmt.Errorf("invalid completed flag %q", s)
	}
	return nil
}

// Value implements driver.Valuer
func (f completedFlag) Value() (driver.Value, error) {
	return bool(f), nil
}
