package utils

import (
	"fmt"
	"medmacs/config"
	"net/smtp"
	"strings"
	"time"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Medmacs <%s>\r\n", from)
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

// HTML wrapper shared by every trigger
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #6D28D9; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F1147; line-height: 1.6; }
			.content h2 { color: #1F1147; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #6D28D9; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #EDE9FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6D28D9; margin: 20px 0; }
			.otp { font-size: 28px; letter-spacing: 6px; font-weight: bold; color: #6D28D9; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>MEDMACS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Medistics. All rights reserved.<br>
				MDCAT preparation, the smart way.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Medmacs"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Medmacs</strong>! Your MDCAT preparation journey starts now.</p>
		<p>Your account has been created. Practice MCQs, take mock tests, and challenge friends to battle quizzes.</p>
		<p>If you have any questions, our support team is a message away.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Aboard!", body))
}

// 2. Email verification OTP
func SendOTPEmail(email, name, otp string) {
	subject := "Your Medmacs verification code"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Use the code below to verify your email address. It expires in 10 minutes.</p>
		<div class="info-box"><span class="otp">%s</span></div>
		<p>If you did not request this, you can safely ignore this email.</p>
	`, name, otp)

	go SendEmail([]string{email}, subject, getEmailTemplate("Verify Your Email", body))
}

// 3. Plan activated (checkout or redeem code)
func SendPlanActivatedEmail(email, name, planName string, expiresAt time.Time) {
	subject := "Plan Activated: " + planName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> plan is now active.</p>
		<div class="info-box">
			<strong>Valid until:</strong> %s
		</div>
		<p>Enjoy unlimited mock tests, AI-generated papers, and battle quizzes.</p>
	`, name, planName, expiresAt.Format("02 Jan 2006"))

	go SendEmail([]string{email}, subject, getEmailTemplate("Plan Activated", body))
}

// 4. Plan expiry reminder (2 days before)
func SendPlanExpiryReminder(email, name, planName string, expiresAt *time.Time) {
	subject := "Your Medmacs plan expires soon"
	expiry := "soon"
	if expiresAt != nil {
		expiry = expiresAt.Format("02 Jan 2006")
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> plan expires on <strong>%s</strong>.</p>
		<p>Renew now to keep your streak and your access to mock tests.</p>
	`, name, planName, expiry)

	go SendEmail([]string{email}, subject, getEmailTemplate("Plan Expiring Soon", body))
}
