package utils

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailNotifier sends transactional mail through SendGrid.
type EmailNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewEmailNotifier(apiKey, sender string) *EmailNotifier {
	return &EmailNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("E-Learning", sender),
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, ev Event) error {
	if strings.TrimSpace(ev.UserEmail) == "" {
		return nil
	}
	subject, plain, body := renderEmail(ev)
	if subject == "" {
		return nil
	}

	msg := mail.NewSingleEmail(n.from, subject, mail.NewEmail(ev.UserName, ev.UserEmail), plain, body)
	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// renderEmail returns subject, plain text and HTML for ev. Events without a
// template yield an empty subject.
func renderEmail(ev Event) (string, string, string) {
	name := ev.UserName
	if name == "" {
		name = "there"
	}
	course := ev.CourseTitle
	if course == "" {
		course = ev.CourseID
	}

	switch ev.Type {
	case EventEnrollmentCreated:
		plain := fmt.Sprintf("Hi %s, you are now enrolled in %s. Track your progress and complete every lesson to earn your certificate.", name, course)
		return "Course Enrollment Confirmation", plain, emailTemplate("Enrollment Successful!", fmt.Sprintf(
			"<p>Dear %s,</p><p>You have successfully enrolled in:</p><h3>%s</h3><p>Track your progress and complete every lesson to earn your certificate.</p>",
			html.EscapeString(name), html.EscapeString(course)))
	case EventCertificateIssued:
		plain := fmt.Sprintf("Congratulations %s! You completed %s and your certificate is ready.", name, course)
		return "Your Certificate of Completion", plain, emailTemplate("Certificate Issued", fmt.Sprintf(
			"<p>Congratulations %s!</p><p>You completed <strong>%s</strong> and your certificate is ready to download.</p>",
			html.EscapeString(name), html.EscapeString(course)))
	default:
		return "", "", ""
	}
}

func emailTemplate(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
		<h2 style="color: #333333; text-align: center;">%s</h2>
		%s
		<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Happy Learning!</p>
	</div>
</body>
</html>`, html.EscapeString(title), body)
}
