package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", middleware.JWTMiddleware, courseValidator.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.GetCourseDetail(), controllers.GetCourseDetails)
	courseGroup.Get("/:id/units", middleware.JWTMiddleware, courseValidator.GetCourseDetail(), controllers.GetCourseUnits)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidator.EnrollCourse(), controllers.EnrollInCourse)
	courseGroup.Delete("/:id/enroll", middleware.JWTMiddleware, courseValidator.EnrollCourse(), controllers.UnenrollFromCourse)

	// Progress and certificates
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, courseValidator.GetCourseProgress(), controllers.GetCourseProgress)
	courseGroup.Post("/:course_id/certificate/request", middleware.JWTMiddleware, courseValidator.RequestCertificateValidator(), controllers.RequestCertificate)

	app.Post("/enrollments/:id/progress", middleware.JWTMiddleware, courseValidator.RecordProgress(), controllers.RecordUnitProgress)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
