package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func StartAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UnitID uint `json:"unit_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UnitID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"unit_id": "Unit ID is required!",
			})
		}

		c.Locals("validatedAttemptStart", reqData)
		return c.Next()
	}
}

func SubmitAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		attemptIDStr := strings.TrimSpace(c.Params("id"))
		attemptID, err := strconv.Atoi(attemptIDStr)
		if err != nil || attemptID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Attempt ID!", nil)
		}

		reqData := new(struct {
			Answers []struct {
				QuestionID uint   `json:"question_id"`
				Answer     string `json:"answer"`
			} `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, a := range reqData.Answers {
			if a.QuestionID == 0 {
				errors["answers"] = "Every answer needs a question_id!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("attemptID", attemptID)
		c.Locals("validatedAttemptSubmit", reqData)
		return c.Next()
	}
}
