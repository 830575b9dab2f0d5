package controllers

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate requests a certificate for a completed course
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	if enrollment.Status != courseModels.ProgressCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
	}

	var existingRequest courseModels.CertificateRequest
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existingRequest).Error; err == nil {
		if existingRequest.Status == "PENDING" {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already pending!", nil)
		}
		if existingRequest.Status == "APPROVED" {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", nil)
		}
	}

	var existingCert courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existingCert).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already exists!", fiber.Map{
			"certificate": existingCert,
		})
	}

	request := courseModels.CertificateRequest{
		UserID:       userID,
		CourseID:     uint(courseID),
		EnrollmentID: enrollment.ID,
		Status:       "PENDING",
		RequestedAt:  time.Now(),
	}

	if err := database.Database.Db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", request)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseName string `json:"course_name"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseName:  course.Title,
		}
	}

	var pendingRequests int64
	database.Database.Db.Model(&courseModels.CertificateRequest{}).
		Where("user_id = ? AND status = ? AND is_deleted = ?", userID, "PENDING", false).
		Count(&pendingRequests)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates":     result,
		"pending_requests": pendingRequests,
	})
}

// AdminGetPendingCertificates lists pending certificate requests
func AdminGetPendingCertificates(c *fiber.Ctx) error {
	var requests []courseModels.CertificateRequest
	if err := database.Database.Db.Where("status = ? AND is_deleted = ?", "PENDING", false).
		Order("requested_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}

// AdminApproveCertificate approves a pending request and issues the certificate
func AdminApproveCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	var request courseModels.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.Status != "PENDING" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request is not pending!", nil)
	}

	certificate, err := utils.IssueCertificate(database.Database.Db, &request, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate approved and issued!", fiber.Map{
		"request":     request,
		"certificate": certificate,
	})
}

// AdminRejectCertificate rejects a pending request
func AdminRejectCertificate(c *fiber.Ctx) error {
	requestID := c.Locals("requestID").(int)

	reqData, ok := c.Locals("validatedRejection").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var request courseModels.CertificateRequest
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.Status != "PENDING" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request is not pending!", nil)
	}

	request.Status = "REJECTED"
	request.RejectionReason = reqData.Reason

	if err := database.Database.Db.Save(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject request!", nil)
	}

	go func() {
		var user models.User
		if err := database.Database.Db.Where("id = ?", request.UserID).First(&user).Error; err != nil {
			log.Printf("[CERTIFICATE] Error fetching user %d for rejection notice: %v", request.UserID, err)
			return
		}
		var course courseModels.Course
		database.Database.Db.Where("id = ?", request.CourseID).First(&course)

		if err := utils.SendCertificateRejectionEmail(user.Email, user.Name, course.Title, request.RejectionReason); err != nil {
			log.Printf("[CERTIFICATE] Error sending rejection email to %s: %v", user.Email, err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected!", request)
}
