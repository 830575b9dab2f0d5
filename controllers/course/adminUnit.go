package controllers

import (
	"encoding/json"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// AdminCreateUnit adds a unit to a course
func AdminCreateUnit(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedUnit").(*struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		ContentType string          `json:"content_type"`
		TextContent string          `json:"text_content"`
		VideoURL    string          `json:"video_url"`
		OrderIndex  int             `json:"order_index"`
		Settings    json.RawMessage `json:"settings"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	unit := courseModels.Unit{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		TextContent: reqData.TextContent,
		VideoURL:    reqData.VideoURL,
		OrderIndex:  reqData.OrderIndex,
		Settings:    datatypes.JSON(reqData.Settings),
	}

	if err := database.Database.Db.Create(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Unit created successfully!", unit)
}

// AdminPublishUnit publishes a unit
func AdminPublishUnit(c *fiber.Ctx) error {
	unitID := c.Locals("unitID").(int)

	var unit courseModels.Unit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", unitID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	unit.IsPublished = true
	if err := database.Database.Db.Save(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit published successfully!", unit)
}

// AdminDeleteUnit soft-deletes a unit
func AdminDeleteUnit(c *fiber.Ctx) error {
	unitID := c.Locals("unitID").(int)

	var unit courseModels.Unit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", unitID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	unit.IsDeleted = true
	unit.IsPublished = false
	if err := database.Database.Db.Save(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit deleted successfully!", nil)
}

// AdminAddQuestion adds a question to a quiz unit
func AdminAddQuestion(c *fiber.Ctx) error {
	unitID := c.Locals("unitID").(int)

	var unit courseModels.Unit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", unitID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if unit.ContentType != courseModels.UnitTypeQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unit is not a quiz!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		QuestionType  string          `json:"question_type"`
		Text          string          `json:"text"`
		Options       json.RawMessage `json:"options"`
		CorrectAnswer string          `json:"correct_answer"`
		Points        int             `json:"points"`
		OrderIndex    int             `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	points := reqData.Points
	if points <= 0 {
		points = 1
	}

	question := courseModels.Question{
		CourseID:      unit.CourseID,
		UnitID:        unit.ID,
		QuestionType:  reqData.QuestionType,
		Text:          reqData.Text,
		Options:       datatypes.JSON(reqData.Options),
		CorrectAnswer: reqData.CorrectAnswer,
		Points:        points,
		OrderIndex:    reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// AdminDeleteQuestion soft-deletes a question
func AdminDeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
