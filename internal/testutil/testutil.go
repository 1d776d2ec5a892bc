package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todolist-web/internal/database"
)

// SetupTestDB creates a private in-memory SQLite database with the lists
// and todos tables. The database is shared by every connection of the
// returned pool and dropped when the pool closes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &database.Config{
		Driver:       database.DriverSQLite,
		SQLitePath:   fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
	}

	db, err := database.Connect(cfg, nil)
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, database.AutoMigrate(db), "Failed to create schema")

	return db
}

// CleanupTestDB closes the test database
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, database.Close(db))
}

// CountRows returns the number of rows matching where in table
func CountRows(t *testing.T, db *gorm.DB, table, where string, args ...any) int64 {
	t.Helper()
	var count int64
	err := db.Table(table).Where(where, args...).Count(&count).Error
	require.NoError(t, err)
	return count
}

// MakeJSONRequest creates an HTTP request with JSON body
func MakeJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var bodyReader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		bodyReader = bytes.NewReader(jsonBody)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, target, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// MakeFormRequest creates an HTTP request with a url-encoded form body
func MakeFormRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// ParseJSONResponse parses a JSON response into a target structure
func ParseJSONResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), target)
	require.NoError(t, err, "Failed to parse JSON response")
}

// UnsetEnv removes the given variables for the duration of the test.
// The previous values are restored by t.Setenv's cleanup.
func UnsetEnv(t testing.TB, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
