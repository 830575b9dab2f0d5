package courseValidator

import (
	"encoding/json"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Duration     int64  `json:"duration"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := requireCourseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Duration     int64  `json:"duration"`
			ThumbnailURL string `json:"thumbnail_url"`
			Status       string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Status != "" && reqData.Status != "DRAFT" && reqData.Status != "ACTIVE" && reqData.Status != "INACTIVE" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be DRAFT, ACTIVE or INACTIVE!",
			})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := requireCourseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

func CreateUnit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := requireCourseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title       string          `json:"title"`
			Description string          `json:"description"`
			ContentType string          `json:"content_type"`
			TextContent string          `json:"text_content"`
			VideoURL    string          `json:"video_url"`
			OrderIndex  int             `json:"order_index"`
			Settings    json.RawMessage `json:"settings"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		switch reqData.ContentType {
		case courseModels.UnitTypeText, courseModels.UnitTypeVideo, courseModels.UnitTypeQuiz:
		default:
			errors["content_type"] = "Content type must be TEXT, VIDEO or QUIZ!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedUnit", reqData)
		return c.Next()
	}
}

func UnitIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, ok := requireCourseIDParam(c, "unit_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Unit ID!", nil)
		}

		c.Locals("unitID", unitID)
		return c.Next()
	}
}

func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitID, ok := requireCourseIDParam(c, "unit_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Unit ID!", nil)
		}

		reqData := new(struct {
			QuestionType  string          `json:"question_type"`
			Text          string          `json:"text"`
			Options       json.RawMessage `json:"options"`
			CorrectAnswer string          `json:"correct_answer"`
			Points        int             `json:"points"`
			OrderIndex    int             `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}

		switch reqData.QuestionType {
		case courseModels.QuestionTypeMultipleChoice, courseModels.QuestionTypeTrueFalse,
			courseModels.QuestionTypeFillBlank, courseModels.QuestionTypeMatching:
		default:
			errors["question_type"] = "Question type must be MULTIPLE_CHOICE, TRUE_FALSE, FILL_BLANK or MATCHING!"
		}

		if strings.TrimSpace(reqData.CorrectAnswer) == "" {
			errors["correct_answer"] = "Correct answer is required!"
		}

		if reqData.Points < 0 {
			errors["points"] = "Points must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("unitID", unitID)
		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func QuestionIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, ok := requireCourseIDParam(c, "question_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		c.Locals("questionID", questionID)
		return c.Next()
	}
}

func ApproveCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, ok := requireCourseIDParam(c, "request_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		c.Locals("requestID", requestID)
		return c.Next()
	}
}

func RejectCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, ok := requireCourseIDParam(c, "request_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Reason) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"reason": "Rejection reason is required!",
			})
		}

		c.Locals("requestID", requestID)
		c.Locals("validatedRejection", reqData)
		return c.Next()
	}
}
