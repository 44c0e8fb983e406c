package service

import (
	"context"
	"fmt"

	"tunehub-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendJobStatusNotification(ctx context.Context, email, name, jobRef string, status domain.JobStatus, reason string) error {
	subject := fmt.Sprintf("Tuning job %s: %s", jobRef, status)
	body := fmt.Sprintf("Hello %s,\n\nYour tuning job %s is now %s.", name, jobRef, status)
	if reason != "" {
		body += fmt.Sprintf("\n\nNote: %s", reason)
	}
	body += "\n\nBest regards,\nThe TuneHub Team"
	return s.send(email, name, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, name string, amountCents int64, label string) error {
	subject := "Credits added to your account"
	body := fmt.Sprintf("Hello %s,\n\n%d credits were added to your account.", name, amountCents)
	if label != "" {
		body += fmt.Sprintf("\n\nPurchase: %s", label)
	}
	body += "\n\nBest regards,\nThe TuneHub Team"
	return s.send(email, name, subject, body)
}

func (s *emailService) SendAdminJobAlert(ctx context.Context, adminEmail, jobRef string, creditsUsed int64) error {
	subject := fmt.Sprintf("New tuning job %s", jobRef)
	body := fmt.Sprintf("A new tuning job %s was submitted (%d credits).", jobRef, creditsUsed)
	return s.send(adminEmail, "Admin", subject, body)
}

func (s *emailService) SendStaleJobReminder(ctx context.Context, email, name, jobRef string) error {
	subject := fmt.Sprintf("We are waiting on you for job %s", jobRef)
	body := fmt.Sprintf("Hello %s,\n\nYour tuning job %s still needs more information from you. Please reply in the job thread.\n\nBest regards,\nThe TuneHub Team", name, jobRef)
	return s.send(email, name, subject, body)
}
