package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/devcamper/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	bootcampController *controllers.BootcampController,
	courseController *controllers.CourseController,
	healthController *controllers.HealthController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Health)

	// Bootcamp routes. Nested course routes share the :id wildcard because
	// gin does not allow two names for one path segment.
	bootcamps := v1.Group("/bootcamps")
	{
		bootcamps.GET("", bootcampController.GetBootcamps)
		bootcamps.POST("", bootcampController.CreateBootcamp)
		bootcamps.GET("/:id", bootcampController.GetBootcamp)
		bootcamps.PUT("/:id", bootcampController.UpdateBootcamp)
		bootcamps.DELETE("/:id", bootcampController.DeleteBootcamp)

		bootcamps.GET("/:id/courses", courseController.GetBootcampCourses)
		bootcamps.POST("/:id/courses", courseController.CreateCourse)
	}

	// Course routes
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}
}
