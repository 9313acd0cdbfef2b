package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholars/internal/app/controllers"
	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/middleware"
)

// Controllers groups the HTTP handlers mounted by SetupRouter
type Controllers struct {
	Auth   *controllers.AuthController
	Course *controllers.CourseController
	Slide  *controllers.SlideController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
	}

	// Course creation is open; anonymous callers create ownerless courses
	v1.POST("/courses", authMiddleware.OptionalJWTAuth(), ctrl.Course.CreateCourse)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		courses := authenticated.Group("/courses")
		{
			courses.GET("", ctrl.Course.ListCourses)
			courses.GET("/:id", ctrl.Course.GetCourse)
			courses.POST("/:id/generate", ctrl.Course.GenerateCourse)
		}

		slides := authenticated.Group("/slides")
		{
			slides.GET("", ctrl.Slide.ListSlides)
			slides.GET("/:id", ctrl.Slide.GetSlide)
			slides.PUT("/:id", ctrl.Slide.UpdateSlide)
			slides.PATCH("/:id", ctrl.Slide.UpdateSlide)
			slides.PUT("/:id/assign", ctrl.Slide.AssignSlide)
			slides.PUT("/:id/release", ctrl.Slide.ReleaseSlide)
			slides.PUT("/:id/approve", ctrl.Slide.ApproveSlide)
			slides.PUT("/:id/reject", ctrl.Slide.RejectSlide)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
