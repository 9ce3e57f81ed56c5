package routes

import (
	"capstone-collab-api/internal/handlers"
	"capstone-collab-api/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(cors.Default())

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Capstone collaboration API is running",
		})
	})

	// All API routes require an identity token issued by the external
	// identity provider.
	api := ginRouter.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	{
		// Task reads and student actions
		api.GET("/tasks", handlers.GetTasks)
		api.GET("/tasks/:id", handlers.GetTaskByID)
		api.GET("/tasks/:id/submissions", handlers.GetSubmissions)
		api.POST("/tasks/:id/submissions", handlers.SubmitTask)
		api.GET("/tasks/:id/notes", handlers.GetNotes)
		api.POST("/tasks/:id/notes", handlers.CreateNote)
		api.DELETE("/notes/:id", handlers.DeleteNote)

		// Users endpoint (member pickers, name enrichment)
		api.GET("/users", handlers.GetAllUsers)

		// Refresh-event stream
		api.GET("/ws", handlers.WebSocketHandler)
	}

	// Adviser-only actions sit behind the staff capability gate.
	staff := api.Group("")
	staff.Use(middleware.StaffOnly())
	{
		staff.POST("/tasks", handlers.CreateTask)
		staff.PATCH("/tasks/:id", handlers.EditTask)
		staff.PATCH("/tasks/:id/status", handlers.UpdateTaskStatus)
		staff.DELETE("/tasks/:id", handlers.DeleteTask)
		staff.POST("/submissions/:id/grade", handlers.GradeSubmission)
	}

	return ginRouter
}
