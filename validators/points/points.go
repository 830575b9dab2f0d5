package pointsValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func AwardPoints() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID *uint  `json:"user_id"`
			Points int    `json:"points"`
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Var(reqData.Points, "required,gt=0"); err != nil {
			errors["points"] = "Points must be a positive number!"
		}

		if err := validate.Var(reqData.Reason, "omitempty,oneof=QUIZ_PASS QUIZ_PERFECT ADMIN_AWARD MANUAL"); err != nil {
			errors["reason"] = "Unknown points reason!"
		}

		if reqData.UserID != nil {
			if err := validate.Var(*reqData.UserID, "gt=0"); err != nil {
				errors["user_id"] = "User ID must be a positive number!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAward", reqData)
		return c.Next()
	}
}
