package quizRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quiz-attempts")

	quizGroup.Post("/", middleware.JWTMiddleware, courseValidator.StartAttempt(), controllers.StartQuizAttempt)
	quizGroup.Post("/:id", middleware.JWTMiddleware, courseValidator.SubmitAttempt(), controllers.SubmitQuizAttempt)
}
