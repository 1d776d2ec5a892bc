package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist-web/internal/middleware"
	"todolist-web/internal/models"
	"todolist-web/internal/testutil"
)

func TestIndexRedirect(t *testing.T) {
	app := newSessionApp(t)

	w := app.get("/")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/lists", w.Header().Get("Location"))
}

func TestGetAllLists(t *testing.T) {
	backends(t, func(t *testing.T, app *testApp) {
		t.Run("returns empty list when no lists exist", func(t *testing.T) {
			resp := app.lists()

			assert.NotNil(t, resp.Lists)
			assert.Empty(t, resp.Lists)
			assert.Nil(t, resp.Flash)
		})

		t.Run("puts complete lists last", func(t *testing.T) {
			done := app.createList("Done")
			app.createTodo(done, "Milk")
			app.post(listPath(done)+"/complete_all_todos", nil)
			app.createList("Open")

			resp := app.lists()

			require.Len(t, resp.Lists, 2)
			assert.Equal(t, "Open", resp.Lists[0].Name)
			assert.False(t, resp.Lists[0].Complete)
			assert.Equal(t, "Done", resp.Lists[1].Name)
			assert.True(t, resp.Lists[1].Complete)
			assert.Equal(t, 1, resp.Lists[1].TodosCount)
			assert.Equal(t, 0, resp.Lists[1].RemainingCount)
		})
	})
}

func TestCreateList(t *testing.T) {
	backends(t, func(t *testing.T, app *testApp) {
		t.Run("creates list and flashes success once", func(t *testing.T) {
			w := app.post("/lists", url.Values{"list_name": {"Groceries"}})

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/lists", w.Header().Get("Location"))

			resp := app.lists()
			require.Len(t, resp.Lists, 1)
			assert.Equal(t, "Groceries", resp.Lists[0].Name)
			require.NotNil(t, resp.Flash)
			assert.Equal(t, `List "Groceries" successfully added.`, resp.Flash.Success)

			assert.Nil(t, app.lists().Flash)
		})

		t.Run("trims whitespace", func(t *testing.T) {
			w := app.post("/lists", url.Values{"list_name": {"  Work  "}})
			require.Equal(t, http.StatusSeeOther, w.Code)

			names := []string{}
			for _, list := range app.lists().Lists {
				names = append(names, list.Name)
			}
			assert.Contains(t, names, "Work")
		})

		t.Run("accepts JSON body", func(t *testing.T) {
			w := app.do(testutil.MakeJSONRequest(t, "POST", "/lists", map[string]string{"name": "Home"}))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Len(t, app.lists().Lists, 3)
		})

		t.Run("rejects duplicate name", func(t *testing.T) {
			w := app.post("/lists", url.Values{"list_name": {"Groceries"}})

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			var resp models.ErrorResponse
			testutil.ParseJSONResponse(t, w, &resp)
			assert.Equal(t, "VALIDATION_ERROR", resp.Code)
			assert.Equal(t, `List name "Groceries" is already in use.`, resp.Message)
			assert.Len(t, app.lists().Lists, 3)
		})

		t.Run("rejects names outside length bounds", func(t *testing.T) {
			for _, name := range []string{"", "   ", strings.Repeat("a", 101)} {
				w := app.post("/lists", url.Values{"list_name": {name}})

				assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
				assert.Contains(t, w.Body.String(), "List name must have from 1 to 100 characters.")
			}
			assert.Len(t, app.lists().Lists, 3)
		})
	})
}

func TestGetList(t *testing.T) {
	backends(t, func(t *testing.T, app *testApp) {
		id := app.createList("Groceries")
		milk := app.createTodo(id, "Milk")
		app.createTodo(id, "Eggs")
		app.post(listPath(id)+"/todos/"+itoa(milk), url.Values{"completed": {"true"}})

		t.Run("returns list with open todos first", func(t *testing.T) {
			resp := app.list(id)

			assert.Equal(t, id, resp.List.ID)
			assert.Equal(t, "Groceries", resp.List.Name)
			require.Len(t, resp.List.Todos, 2)
			assert.Equal(t, "Eggs", resp.List.Todos[0].Name)
			assert.Equal(t, "Milk", resp.List.Todos[1].Name)
			assert.Equal(t, 2, resp.List.TodosCount)
			assert.Equal(t, 1, resp.List.RemainingCount)
			assert.False(t, resp.List.Complete)
		})

		t.Run("redirects with error when list not found", func(t *testing.T) {
			w := app.get("/lists/999")

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/lists", w.Header().Get("Location"))

			resp := app.lists()
			require.NotNil(t, resp.Flash)
			assert.Equal(t, "List '999' not found", resp.Flash.Error)
		})

		t.Run("rejects non-integer id", func(t *testing.T) {
			w := app.get("/lists/abc")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_ID")
		})
	})
}

func TestUpdateList(t *testing.T) {
	backends(t, func(t *testing.T, app *testApp) {
		id := app.createList("Original")
		app.createList("Taken")

		t.Run("renames list", func(t *testing.T) {
			w := app.post(listPath(id), url.Values{"list_name": {"Renamed"}})

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, listPath(id), w.Header().Get("Location"))

			resp := app.list(id)
			assert.Equal(t, "Renamed", resp.List.Name)
			require.NotNil(t, resp.Flash)
			assert.Equal(t, "List successfully updated.", resp.Flash.Success)
		})

		t.Run("same name redirects without change", func(t *testing.T) {
			w := app.post(listPath(id), url.Values{"list_name": {" Renamed "}})

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, listPath(id), w.Header().Get("Location"))
			assert.Nil(t, app.list(id).Flash)
		})

		t.Run("rejects name of another list", func(t *testing.T) {
			w := app.post(listPath(id), url.Values{"list_name": {"Taken"}})

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), `List name \"Taken\" is already in use.`)
			assert.Equal(t, "Renamed", app.list(id).List.Name)
		})

		t.Run("rejects empty name", func(t *testing.T) {
			w := app.post(listPath(id), url.Values{"list_name": {""}})

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})

		t.Run("redirects when list not found", func(t *testing.T) {
			w := app.post("/lists/999", url.Values{"list_name": {"Other"}})

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/lists", w.Header().Get("Location"))
		})
	})
}

func TestDeleteList(t *testing.T) {
	backends(t, func(t *testing.T, app *testApp) {
		t.Run("deletes list and redirects", func(t *testing.T) {
			id := app.createList("Doomed")
			app.createTodo(id, "Milk")

			w := app.post(listPath(id)+"/destroy", nil)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/lists", w.Header().Get("Location"))

			resp := app.lists()
			assert.Empty(t, resp.Lists)
			require.NotNil(t, resp.Flash)
			assert.Equal(t, `List "Doomed" deleted.`, resp.Flash.Success)
		})

		t.Run("answers XHR with the next location", func(t *testing.T) {
			id := app.createList("Scripted")

			w := app.postXHR(listPath(id)+"/destroy", nil)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "/lists", w.Body.String())
			assert.Empty(t, app.lists().Lists)
		})

		t.Run("redirects with error when list not found", func(t *testing.T) {
			w := app.post("/lists/999/destroy", nil)

			assert.Equal(t, http.StatusSeeOther, w.Code)
			resp := app.lists()
			require.NotNil(t, resp.Flash)
			assert.Equal(t, "List '999' not found", resp.Flash.Error)
		})
	})
}

func TestDeleteListCascadesInDatabase(t *testing.T) {
	app, db := newDatabaseApp(t)
	id := app.createList("Doomed")
	app.createTodo(id, "Milk")
	app.createTodo(id, "Eggs")

	w := app.post(listPath(id)+"/destroy", nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Zero(t, testutil.CountRows(t, db, "todos", "list_id = ?", id))
	assert.Zero(t, testutil.CountRows(t, db, "lists", "id = ?", id))
}

func TestListsWithoutStorage(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.get("/lists")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestListsStorageFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT id, name FROM lists").WillReturnError(errDatabaseDown)

	app := newTestApp(t, middleware.DatabaseStorage(db))
	w := app.get("/lists")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.ErrorResponse
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
	assert.NotContains(t, w.Body.String(), errDatabaseDown.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
