package utils

import (
	"fmt"
	"log"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeCertificateScheduler sets up the certificate auto-issue scheduler
func InitializeCertificateScheduler() {
	log.Println("[CERT-SCHEDULER] Initializing certificate scheduler...")

	c := cron.New()

	// Run daily at 9 AM to sweep stale pending requests
	c.AddFunc("0 9 * * *", func() {
		log.Println("[CERT-SCHEDULER] Running daily certificate sweep...")
		ProcessStalePendingRequests()
	})

	c.Start()
	log.Println("[CERT-SCHEDULER] Certificate scheduler started - runs daily at 9 AM")
}

// ProcessStalePendingRequests auto-issues certificates for requests that have
// been pending for over 7 days on completed enrollments. ApprovedBy 0 marks
// a system approval.
func ProcessStalePendingRequests() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -7)

	var staleRequests []courseModels.CertificateRequest
	if err := db.Where("status = ? AND is_deleted = false AND requested_at < ?", "PENDING", cutoff).
		Find(&staleRequests).Error; err != nil {
		log.Printf("[CERT-SCHEDULER] Error fetching pending requests: %v", err)
		return
	}

	log.Printf("[CERT-SCHEDULER] Found %d stale pending requests", len(staleRequests))

	for i := range staleRequests {
		request := &staleRequests[i]

		var enrollment courseModels.Enrollment
		if err := db.Where("id = ?", request.EnrollmentID).First(&enrollment).Error; err != nil {
			log.Printf("[CERT-SCHEDULER] Error fetching enrollment %d: %v", request.EnrollmentID, err)
			continue
		}
		if enrollment.Status != courseModels.ProgressCompleted {
			continue
		}

		if _, err := IssueCertificate(db, request, 0); err != nil {
			log.Printf("[CERT-SCHEDULER] Error issuing certificate for request %d: %v", request.ID, err)
			continue
		}
		log.Printf("[CERT-SCHEDULER] Auto-issued certificate for request %d (user %d)", request.ID, request.UserID)
	}
}

// IssueCertificate approves a pending request and creates the certificate
// in one transaction. The email and webhook notifications go out after the
// transaction commits.
func IssueCertificate(db *gorm.DB, request *courseModels.CertificateRequest, approvedBy uint) (*courseModels.Certificate, error) {
	now := time.Now()

	certificate := courseModels.Certificate{
		UserID:            request.UserID,
		CourseID:          request.CourseID,
		EnrollmentID:      request.EnrollmentID,
		CertificateNumber: fmt.Sprintf("CERT-%s", uuid.NewString()),
		IssuedAt:          now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		request.Status = "APPROVED"
		request.ApprovedAt = &now
		request.ApprovedBy = &approvedBy

		if err := tx.Save(request).Error; err != nil {
			return err
		}
		return tx.Create(&certificate).Error
	})
	if err != nil {
		return nil, err
	}

	go func() {
		var user models.User
		if err := db.Where("id = ?", request.UserID).First(&user).Error; err != nil {
			log.Printf("[CERT-SCHEDULER] Error fetching user %d for notification: %v", request.UserID, err)
			return
		}
		var course courseModels.Course
		db.Where("id = ?", request.CourseID).First(&course)

		if err := SendCertificateEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber); err != nil {
			log.Printf("[CERT-SCHEDULER] Error sending certificate email to %s: %v", user.Email, err)
		}
		NotifyCertificateIssued(request.UserID, request.CourseID, certificate.CertificateNumber)
	}()

	return &certificate, nil
}
