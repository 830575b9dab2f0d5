package utils

import (
	"log"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// postWebhook delivers an event payload to the configured webhook endpoint.
// Failures are logged and swallowed so callers never block on delivery.
func postWebhook(event string, payload map[string]interface{}) {
	url := config.AppConfig.WebhookURL
	if url == "" {
		return
	}

	payload["event"] = event

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		log.Printf("[WEBHOOK] Failed to deliver %s event: %v", event, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("[WEBHOOK] %s event rejected with status %d: %s", event, resp.StatusCode(), resp.String())
	}
}

// NotifyCourseCompleted fires when an enrollment reaches 100% progress.
func NotifyCourseCompleted(userID, courseID uint) {
	postWebhook("course.completed", map[string]interface{}{
		"user_id":   userID,
		"course_id": courseID,
	})
}

// NotifyLevelUp fires when a points award pushes a user into a new level.
func NotifyLevelUp(userID uint) {
	postWebhook("points.level_up", map[string]interface{}{
		"user_id": userID,
	})
}

// NotifyCertificateIssued fires after an approved certificate is created.
func NotifyCertificateIssued(userID, courseID uint, certificateNumber string) {
	postWebhook("certificate.issued", map[string]interface{}{
		"user_id":            userID,
		"course_id":          courseID,
		"certificate_number": certificateNumber,
	})
}
