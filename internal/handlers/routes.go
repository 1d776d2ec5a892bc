package handlers

import (
	"github.com/gin-gonic/gin"

	"todolist-web/internal/middleware"
)

// RegisterRoutes mounts the list and todo pages on r. writeGuards run
// before every handler that changes data.
func RegisterRoutes(r gin.IRouter, lists *ListHandler, todos *TodoHandler, writeGuards ...gin.HandlerFunc) {
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(writeGuards)+1)
		chain = append(chain, writeGuards...)
		return append(chain, h)
	}

	r.GET("/", lists.Index)
	r.GET("/lists", lists.GetAllLists)
	r.POST("/lists", write(lists.CreateList)...)

	list := r.Group("/lists/:id", middleware.IDValidator("id", "todoId"))
	{
		list.GET("", lists.GetList)
		list.POST("", write(lists.UpdateList)...)
		list.POST("/destroy", write(lists.DeleteList)...)

		list.POST("/todos", write(todos.CreateTodo)...)
		list.POST("/todos/:todoId", write(todos.UpdateTodoStatus)...)
		list.POST("/todos/:todoId/destroy", write(todos.DeleteTodo)...)
		list.POST("/complete_all_todos", write(todos.CompleteAllTodos)...)
	}
}

// RegisterHealthRoutes mounts the health endpoints on r
func RegisterHealthRoutes(r gin.IRouter, health *HealthHandler) {
	r.GET("/health", health.BasicHealth)
	r.GET("/health/detailed", health.DetailedHealth)
	r.GET("/health/ready", health.ReadinessProbe)
	r.GET("/health/live", health.LivenessProbe)
}
