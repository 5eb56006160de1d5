package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"go-screening-backend/config"
)

// EmailService sends transactional mail via SMTP.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// CompletionEmailData summarizes a finished screening for the candidate.
type CompletionEmailData struct {
	FullName      string
	Positions     []string
	Topics        []string
	QuestionCount int
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

const completionEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Screening Complete</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Thank You, {{.FullName}}</h1>
        </div>
        <div class="content">
            <p>Your screening conversation is complete. A recruiter will review your answers and reach out about the next steps.</p>
            <div class="field">
                <div class="label">Desired positions:</div>
                <div class="value">{{.PositionList}}</div>
            </div>
            <div class="field">
                <div class="label">Topics covered:</div>
                <div class="value">{{.TopicList}}</div>
            </div>
            <div class="field">
                <div class="label">Questions answered:</div>
                <div class="value">{{.QuestionCount}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This is an automated message from the TalentScout screening assistant.</p>
        </div>
    </div>
</body>
</html>`

// SendCompletionEmail mails the post-screening summary to the
// candidate. Callers treat failures as non-fatal.
func (s *EmailService) SendCompletionEmail(to string, data CompletionEmailData) error {
	tmpl, err := template.New("completion").Parse(completionEmailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	view := struct {
		FullName      string
		PositionList  string
		TopicList     string
		QuestionCount int
	}{
		FullName:      data.FullName,
		PositionList:  joinOrDash(data.Positions),
		TopicList:     joinOrDash(data.Topics),
		QuestionCount: data.QuestionCount,
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, view); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		"Your TalentScout screening is complete",
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured reports whether SMTP credentials are present.
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
