package controllers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func TestAdminRejectCertificateMarksRequestRejected(t *testing.T) {
	db := setupTestDB(t)
	database.Database = database.DbInstance{Db: db}
	config.LoadConfig()

	user := models.User{Name: "Learner", Email: t.Name() + "@test.local", Role: "LEARNER"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	course := courseModels.Course{Title: "Reject Course", Status: "ACTIVE", IsPublished: true}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	request := courseModels.CertificateRequest{
		UserID:       user.ID,
		CourseID:     course.ID,
		EnrollmentID: 1,
		Status:       "PENDING",
		RequestedAt:  time.Now(),
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("failed to create certificate request: %v", err)
	}

	app := fiber.New()
	app.Post("/admin/certificates/:request_id/reject", courseValidator.RejectCertificate(), AdminRejectCertificate)

	target := fmt.Sprintf("/admin/certificates/%d/reject", request.ID)
	req := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(`{"reason": "Progress record looks incomplete"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}

	var reloaded courseModels.CertificateRequest
	if err := db.First(&reloaded, request.ID).Error; err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if reloaded.Status != "REJECTED" {
		t.Errorf("status = %q, want REJECTED", reloaded.Status)
	}
	if reloaded.RejectionReason != "Progress record looks incomplete" {
		t.Errorf("rejection reason = %q, want the submitted reason", reloaded.RejectionReason)
	}

	// A request that already left PENDING cannot be rejected again
	second := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(`{"reason": "Second attempt"}`))
	second.Header.Set("Content-Type", "application/json")
	resp2, err := app.Test(second)
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != fiber.StatusBadRequest {
		t.Errorf("second reject status = %d, want %d", resp2.StatusCode, fiber.StatusBadRequest)
	}
}
