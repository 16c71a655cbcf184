package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"krishiCMS/domain"
	"krishiCMS/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
)

type MailjetConfig struct {
	MailjetBaseURL           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type MailjetRepository struct {
	mailjetConfig MailjetConfig
	client        *http.Client
}

func NewMailjetRepository(cfg MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		mailjetConfig: cfg,
		client:        &http.Client{Timeout: 5 * time.Second},
	}
}

type payloadSendEmail struct {
	Messages []Messages `json:"Messages"`
}

type Address struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type Messages struct {
	From     Address   `json:"From"`
	To       []Address `json:"To"`
	ReplyTo  *Address  `json:"ReplyTo,omitempty"`
	Subject  string    `json:"Subject"`
	TextPart string    `json:"TextPart"`
	HTMLPart string    `json:"HTMLPart,omitempty"`
}

// Email is one outgoing message. ReplyTo lets the admin answer the visitor directly.
type Email struct {
	ToName   string
	ToEmail  string
	ReplyTo  string
	Subject  string
	TextPart string
	HTMLPart string
}

func (r *MailjetRepository) SendEmail(ctx context.Context, email Email) error {
	message := Messages{
		From: Address{
			Email: r.mailjetConfig.MailjetSenderEmail,
			Name:  r.mailjetConfig.MailjetSenderName,
		},
		To:       []Address{{Email: email.ToEmail, Name: email.ToName}},
		Subject:  email.Subject,
		TextPart: email.TextPart,
		HTMLPart: email.HTMLPart,
	}
	if email.ReplyTo != "" {
		message.ReplyTo = &Address{Email: email.ReplyTo}
	}

	payloadByte, err := json.Marshal(payloadSendEmail{Messages: []Messages{message}})
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.mailjetConfig.MailjetBaseURL+"/v3.1/send", bytes.NewReader(payloadByte))
	if err != nil {
		return fmt.Errorf("failed to build mailjet request: %w", err)
	}

	basicAuth := goshortcute.StringtoBase64Encode(r.mailjetConfig.MailjetBasicAuthUsername + ":" + r.mailjetConfig.MailjetBasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+basicAuth)

	res, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call mailjet: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	bodyBytes, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	logger.Warn("Mailjet rejected message", "status", res.StatusCode, "body", string(bodyBytes))

	return fmt.Errorf("mailer service return negative response %v", res.StatusCode)
}

const contactSubject = "New enquiry: %s"

// SendContactMessage forwards a contact form submission to the site admin.
func (r *MailjetRepository) SendContactMessage(ctx context.Context, adminEmail string, msg domain.ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "Website contact form"
	}

	text := fmt.Sprintf("Name: %s\nEmail: %s\nMobile: %s\n\n%s", msg.Name, msg.Email, msg.Mobile, msg.Message)
	body := fmt.Sprintf(
		"<p><b>Name:</b> %s<br><b>Email:</b> %s<br><b>Mobile:</b> %s</p><p>%s</p>",
		html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Mobile),
		strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
	)

	return r.SendEmail(ctx, Email{
		ToEmail:  adminEmail,
		ReplyTo:  msg.Email,
		Subject:  fmt.Sprintf(contactSubject, subject),
		TextPart: text,
		HTMLPart: body,
	})
}
