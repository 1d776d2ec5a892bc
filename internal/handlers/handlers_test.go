package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todolist-web/internal/config"
	"todolist-web/internal/middleware"
	"todolist-web/internal/models"
	"todolist-web/internal/session"
	"todolist-web/internal/testutil"
)

var testSessionConfig = config.SessionConfig{
	CookieName: "todolist_session",
	TTL:        time.Hour,
}

var errDatabaseDown = errors.New("database is down")

// testApp drives a router the way a browser would, carrying the session
// cookie from one request to the next
type testApp struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func newTestApp(t *testing.T, storageMiddleware gin.HandlerFunc) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.Sessions(session.NewStore(time.Hour), testSessionConfig))
	if storageMiddleware != nil {
		router.Use(storageMiddleware)
	}
	RegisterRoutes(router, NewListHandler(), NewTodoHandler())

	return &testApp{t: t, router: router}
}

func newSessionApp(t *testing.T) *testApp {
	return newTestApp(t, middleware.SessionStorage())
}

func newDatabaseApp(t *testing.T) (*testApp, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })
	return newTestApp(t, middleware.DatabaseStorage(db)), db
}

// backends runs fn once per storage backend
func backends(t *testing.T, fn func(t *testing.T, app *testApp)) {
	t.Run("session", func(t *testing.T) {
		fn(t, newSessionApp(t))
	})
	t.Run("database", func(t *testing.T) {
		app, _ := newDatabaseApp(t)
		fn(t, app)
	})
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	a.t.Helper()
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testSessionConfig.CookieName {
			a.cookie = cookie
		}
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest("GET", path, http.NoBody))
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	return a.do(testutil.MakeFormRequest("POST", path, form))
}

func (a *testApp) postXHR(path string, form url.Values) *httptest.ResponseRecorder {
	req := testutil.MakeFormRequest("POST", path, form)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return a.do(req)
}

func (a *testApp) lists() models.ListsResponse {
	a.t.Helper()
	w := a.get("/lists")
	require.Equal(a.t, http.StatusOK, w.Code)

	var resp models.ListsResponse
	testutil.ParseJSONResponse(a.t, w, &resp)
	return resp
}

func (a *testApp) list(id int) models.ListResponse {
	a.t.Helper()
	w := a.get(listPath(id))
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp models.ListResponse
	testutil.ParseJSONResponse(a.t, w, &resp)
	return resp
}

// createList adds a list through the HTTP surface and returns its id
func (a *testApp) createList(name string) int {
	a.t.Helper()
	w := a.post("/lists", url.Values{"list_name": {name}})
	require.Equal(a.t, http.StatusSeeOther, w.Code, w.Body.String())

	for _, list := range a.lists().Lists {
		if list.Name == name {
			return list.ID
		}
	}
	a.t.Fatalf("list %q not found after create", name)
	return 0
}

// createTodo adds a todo and returns its id
func (a *testApp) createTodo(listID int, name string) int {
	a.t.Helper()
	w := a.post(listPath(listID)+"/todos", url.Values{"todo": {name}})
	require.Equal(a.t, http.StatusSeeOther, w.Code, w.Body.String())

	for _, todo := range a.list(listID).List.Todos {
		if todo.Name == name {
			return todo.ID
		}
	}
	a.t.Fatalf("todo %q not found after create", name)
	return 0
}

// setupMockDB returns a postgres flavoured gorm handle over sqlmock for
// exercising storage failures
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
