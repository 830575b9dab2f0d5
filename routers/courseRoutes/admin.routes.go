package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Course management
	adminGroup.Post("/course", courseValidator.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Patch("/course/:id", courseValidator.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Post("/course/:id/publish", courseValidator.CourseIDParam(), controllers.AdminPublishCourse)
	adminGroup.Delete("/course/:id", courseValidator.CourseIDParam(), controllers.AdminDeleteCourse)
	adminGroup.Get("/course/:id/enrollments", courseValidator.CourseIDParam(), controllers.AdminGetCourseEnrollments)

	// Unit management
	adminGroup.Post("/course/:id/units", courseValidator.CreateUnit(), controllers.AdminCreateUnit)
	adminGroup.Post("/units/:unit_id/publish", courseValidator.UnitIDParam(), controllers.AdminPublishUnit)
	adminGroup.Delete("/units/:unit_id", courseValidator.UnitIDParam(), controllers.AdminDeleteUnit)

	// Question management
	adminGroup.Post("/units/:unit_id/questions", courseValidator.AddQuestion(), controllers.AdminAddQuestion)
	adminGroup.Delete("/questions/:question_id", courseValidator.QuestionIDParam(), controllers.AdminDeleteQuestion)

	// Certificate workflow
	adminGroup.Get("/certificates/pending", controllers.AdminGetPendingCertificates)
	adminGroup.Post("/certificates/:request_id/approve", courseValidator.ApproveCertificate(), controllers.AdminApproveCertificate)
	adminGroup.Post("/certificates/:request_id/reject", courseValidator.RejectCertificate(), controllers.AdminRejectCertificate)
}
