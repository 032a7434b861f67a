package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/immacora/softdesk/internal/handlers"
	"github.com/immacora/softdesk/internal/middleware"
	"github.com/immacora/softdesk/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)
	r.POST("/signup", handlers.Signup)
	r.POST("/login", handlers.Login)
	r.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	r.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

	projects := r.Group("/projects", middleware.AuthMiddleware())
	{
		projects.GET("", handlers.ListProjects)
		projects.POST("", handlers.CreateProject)
		projects.GET("/:project_id", handlers.GetProject)
		projects.PUT("/:project_id", handlers.UpdateProject)
		projects.DELETE("/:project_id", handlers.DeleteProject)

		projects.GET("/:project_id/contributors", handlers.ListContributors)
		projects.POST("/:project_id/contributors", handlers.AddContributor)
		projects.DELETE("/:project_id/contributors/:user_id", handlers.RemoveContributor)

		projects.GET("/:project_id/issues", handlers.ListIssues)
		projects.POST("/:project_id/issues", handlers.CreateIssue)
		projects.GET("/:project_id/issues/:issue_id", handlers.GetIssue)
		projects.PUT("/:project_id/issues/:issue_id", handlers.UpdateIssue)
		projects.DELETE("/:project_id/issues/:issue_id", handlers.DeleteIssue)

		projects.GET("/:project_id/issues/:issue_id/comments", handlers.ListComments)
		projects.POST("/:project_id/issues/:issue_id/comments", handlers.CreateComment)

		projects.GET("/:project_id/activity", handlers.GetActivity)
	}

	comments := r.Group("/comments", middleware.AuthMiddleware())
	{
		comments.GET("/:comment_id", handlers.GetComment)
		comments.PUT("/:comment_id", handlers.UpdateComment)
		comments.DELETE("/:comment_id", handlers.DeleteComment)
	}

	return r
}
