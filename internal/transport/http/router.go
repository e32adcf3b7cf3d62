package handlers

import (
	"time"

	"coursehub/internal/infrastructure/security"
	"coursehub/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	authHandler *AuthHandler,
	courseHandler *CourseHandler,
	categoryHandler *CategoryHandler,
	enrollmentHandler *EnrollmentHandler,
	limiter *middleware.RateLimiter,
	tokens *security.TokenManager,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		config.AllowOrigins = allowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	requireAuth := middleware.RequireAuth(tokens)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		api.GET("/categories", categoryHandler.List)
		api.POST("/categories", requireAuth, categoryHandler.Create)

		courses := api.Group("/courses")
		{
			courses.GET("", courseHandler.List)
			courses.GET("/:id", middleware.OptionalAuth(tokens), courseHandler.GetOne)
			courses.POST("", requireAuth, courseHandler.Create)
			courses.GET("/:id/topics/:topicId/playback", requireAuth, courseHandler.Playback)
		}

		user := api.Group("/user")
		user.Use(requireAuth)
		{
			user.GET("/courses", enrollmentHandler.ListMy)
			user.POST("/courses", enrollmentHandler.Enroll)
		}

		api.POST("/payment/checkout", requireAuth, enrollmentHandler.Checkout)
	}

	return r
}
