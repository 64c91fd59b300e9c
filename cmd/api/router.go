package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookspace-backend/internal/shared/middleware"
	"bookspace-backend/internal/shared/response"
	"bookspace-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupShelfRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.Profile)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		// Public catalog reads. Details and comments accept an optional
		// token so the viewer's edit rights and own rating come back.
		books.GET("", c.BookHandler.List)
		books.GET("/search", c.BookHandler.Search)
		books.GET("/:id", middleware.OptionalAuthMiddleware(c.JWTManager), c.BookHandler.Details)
		books.GET("/:id/genres", c.TaxonomyHandler.BookGenres)
		books.GET("/:id/tags", c.TaxonomyHandler.BookTags)

		// Catalog writes are admin-only.
		admin := books.Group("")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			admin.POST("", c.BookHandler.Create)
			admin.PUT("/:id", c.BookHandler.Update)
			admin.DELETE("/:id", c.BookHandler.Delete)
			admin.POST("/:id/taxonomy", c.TaxonomyHandler.Attach)
		}

		// Any signed-in user may rate or comment.
		authed := books.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			authed.POST("/:id/rate", c.BookHandler.Rate)
			authed.POST("/:id/comments", c.CommentHandler.Add)
		}

		books.GET("/:id/comments", middleware.OptionalAuthMiddleware(c.JWTManager), c.CommentHandler.List)
	}
}

func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	comments := v1.Group("/comments")
	comments.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		comments.DELETE("/:id", c.CommentHandler.Delete)
	}
}

func setupShelfRoutes(v1 *gin.RouterGroup, c *container.Container) {
	shelf := v1.Group("/shelf")
	shelf.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		shelf.GET("", c.ShelfHandler.List)
		shelf.PUT("/:bookId", c.ShelfHandler.Add)
		shelf.DELETE("/:bookId", c.ShelfHandler.Remove)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", err.Error())
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "healthy",
			"service": c.Config.App.Name,
			"version": c.Config.App.Version,
		})
	}
}
