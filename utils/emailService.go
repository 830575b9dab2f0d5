package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// SendEmail sends an HTML email through the configured SMTP account.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	if from == "" {
		return nil
	}
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A4B; line-height: 1.6; }
			.content h2 { color: #1B3A4B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5FA8A0; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>Learning Portal</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message. Please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendCertificateEmail notifies a learner that their certificate was issued.
func SendCertificateEmail(email, name, courseTitle, certificateNumber string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<div class="info-box">
			Your certificate number is <strong>%s</strong>. Keep it for your records.
		</div>
		<p>You can view all your certificates from your profile page.</p>`,
		name, courseTitle, certificateNumber)

	return SendEmail([]string{email}, "Your Certificate Is Ready", getEmailTemplate("Certificate Issued", body))
}

// SendCertificateRejectionEmail notifies a learner that their request was declined.
func SendCertificateRejectionEmail(email, name, courseTitle, reason string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your certificate request for <strong>%s</strong> was not approved.</p>
		<div class="info-box">
			Reason: %s
		</div>
		<p>If you believe this is a mistake, please contact support.</p>`,
		name, courseTitle, reason)

	return SendEmail([]string{email}, "Certificate Request Update", getEmailTemplate("Certificate Request Declined", body))
}
