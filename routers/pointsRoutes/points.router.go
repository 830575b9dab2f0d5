package pointsRoutes

import (
	pointsController "lms/controllers/points"
	"lms/middleware"
	pointsValidator "lms/validators/points"

	"github.com/gofiber/fiber/v2"
)

func SetupPointsRoutes(app *fiber.App) {
	pointsGroup := app.Group("/points")

	pointsGroup.Post("/", middleware.JWTMiddleware, pointsValidator.AwardPoints(), pointsController.AwardPointsHandler)
	pointsGroup.Get("/", middleware.JWTMiddleware, pointsController.GetMyPoints)
	pointsGroup.Get("/leaderboard", middleware.JWTMiddleware, pointsController.GetLeaderboard)
}
