package courseRoutes

import (
	controllers "elearn/controllers/course"
	"elearn/middleware"
	validators "elearn/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, enrollment, progress and certificate routes
func SetupCourseRoutes(router fiber.Router) {
	// Catalog (public)
	router.Get("/courses", controllers.GetAllCourses)
	router.Get("/courses/:id", controllers.GetCourseDetails)

	// Enrollment
	router.Post("/enrollments", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)
	router.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)

	// Progress tracking
	router.Get("/progress/:userId", middleware.JWTMiddleware, middleware.SelfOnly("userId"), controllers.GetUserProgress)
	router.Post("/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)

	// Certificates
	router.Post("/certificates", middleware.JWTMiddleware, validators.RequestCertificate(), controllers.RequestCertificate)
	router.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
