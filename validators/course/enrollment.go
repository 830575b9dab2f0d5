package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := requireCourseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

func RecordProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentIDStr := strings.TrimSpace(c.Params("id"))
		enrollmentID, err := strconv.Atoi(enrollmentIDStr)
		if err != nil || enrollmentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Enrollment ID!", nil)
		}

		reqData := new(struct {
			UnitID       uint    `json:"unit_id"`
			Status       *string `json:"status"`
			Score        *int    `json:"score"`
			TimeSpentSec int     `json:"time_spent_sec"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UnitID == 0 {
			errors["unit_id"] = "Unit ID is required!"
		}

		if reqData.Status != nil {
			switch *reqData.Status {
			case courseModels.ProgressNotStarted, courseModels.ProgressInProgress, courseModels.ProgressCompleted:
			default:
				errors["status"] = "Status must be NOT_STARTED, IN_PROGRESS or COMPLETED!"
			}
		}

		if reqData.Score != nil && (*reqData.Score < 0 || *reqData.Score > 100) {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if reqData.TimeSpentSec < 0 {
			errors["time_spent_sec"] = "Time spent must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("enrollmentID", enrollmentID)
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
