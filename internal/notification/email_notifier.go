package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go-placement-backend/internal/domain"
	"go-placement-backend/pkg/email"
	"go-placement-backend/pkg/logger"
)

const scheduledTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Interview scheduled</h2>
    <p>An interview has been scheduled for {{.Start}} – {{.End}}.</p>
    <p>Mode: {{.Mode}}{{if .Venue}} at {{.Venue}}{{end}}</p>
    <p>Please confirm your availability in the placement portal.</p>
</body>
</html>`

const statusChangedTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Interview update</h2>
    <p>Your interview on {{.Start}} is now <strong>{{.Status}}</strong> (was {{.Previous}}).</p>
</body>
</html>`

// EmailNotifier delivers interview notifications over SMTP. Recipient
// addresses are resolved from the users table at send time.
type EmailNotifier struct {
	sender *email.Sender
	users  domain.UserRepository
}

func NewEmailNotifier(sender *email.Sender, users domain.UserRepository) *EmailNotifier {
	return &EmailNotifier{sender: sender, users: users}
}

func (n *EmailNotifier) InterviewScheduled(ctx context.Context, iv *domain.Interview) error {
	data := map[string]any{
		"Start": iv.StartTime.Format("Mon, 2 Jan 2006 15:04"),
		"End":   iv.EndTime.Format("15:04"),
		"Mode":  iv.Mode,
		"Venue": venueOf(iv),
	}
	return n.send(ctx, iv, "Interview scheduled", scheduledTemplate, data)
}

func (n *EmailNotifier) InterviewStatusChanged(ctx context.Context, iv *domain.Interview, previous domain.InterviewStatus) error {
	data := map[string]any{
		"Start":    iv.StartTime.Format("Mon, 2 Jan 2006 15:04"),
		"Status":   iv.Status,
		"Previous": previous,
	}
	return n.send(ctx, iv, "Interview "+string(iv.Status), statusChangedTemplate, data)
}

func (n *EmailNotifier) send(ctx context.Context, iv *domain.Interview, subject, tmplText string, data map[string]any) error {
	if !n.sender.IsConfigured() {
		return nil
	}

	tmpl, err := template.New("notify").Parse(tmplText)
	if err != nil {
		return fmt.Errorf("parse notification template: %w", err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	recipients := n.resolveEmails(ctx, iv.Participants())
	if len(recipients) == 0 {
		return nil
	}
	return n.sender.Send(recipients, subject, body.String())
}

// resolveEmails looks up participant addresses, skipping ids without a local
// user row rather than failing the whole notification
func (n *EmailNotifier) resolveEmails(ctx context.Context, ids []string) []string {
	var emails []string
	for _, id := range ids {
		user, err := n.users.GetByID(ctx, id)
		if err != nil {
			logger.Log.Warn("notification: participant lookup failed", "user_id", id, "error", err)
			continue
		}
		emails = append(emails, user.Email)
	}
	return emails
}

func venueOf(iv *domain.Interview) string {
	if iv.Venue != nil {
		return *iv.Venue
	}
	return ""
}
