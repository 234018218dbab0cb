package utils

import (
	"fmt"
	"html"
	"log"
	"strings"

	"carx-store/config"
	"carx-store/models"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers a single HTML email
type Mailer interface {
	SendEmail(toEmail, subject, htmlContent string) error
}

// PostmarkMailer sends through the Postmark API
type PostmarkMailer struct {
	client *postmark.Client
	sender string
}

// NewPostmarkMailer returns a mailer for the given server token
func NewPostmarkMailer(serverToken, sender string) *PostmarkMailer {
	return &PostmarkMailer{
		client: postmark.NewClient(serverToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (m *PostmarkMailer) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := m.client.SendEmail(postmark.Email{
		From:     m.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: stripTags(htmlContent),
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendGridMailer sends through the SendGrid v3 API
type SendGridMailer struct {
	client   *sendgrid.Client
	sender   string
	shopName string
}

// NewSendGridMailer returns a mailer for the given API key
func NewSendGridMailer(apiKey, sender, shopName string) *SendGridMailer {
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		sender:   sender,
		shopName: shopName,
	}
}

// SendEmail sends a basic email to the specified recipient
func (m *SendGridMailer) SendEmail(toEmail, subject, htmlContent string) error {
	from := mail.NewEmail(m.shopName, m.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, stripTags(htmlContent), htmlContent)
	resp, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("failed to send email: sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer only logs the message. It is the default in development.
type LogMailer struct{}

// SendEmail logs the recipient and subject
func (LogMailer) SendEmail(toEmail, subject, htmlContent string) error {
	log.Printf("mail to=%s subject=%q", toEmail, subject)
	return nil
}

// NewMailer picks the provider named in cfg. Providers without credentials
// fall back to the log mailer.
func NewMailer(cfg config.Config) Mailer {
	switch cfg.MailProvider {
	case config.MailSendGrid:
		if cfg.SendGridAPIKey != "" {
			return NewSendGridMailer(cfg.SendGridAPIKey, cfg.EmailSender, cfg.ShopName)
		}
		log.Println("SENDGRID_API_KEY is not set, falling back to log mailer")
	case config.MailPostmark:
		if cfg.PostmarkServerToken != "" {
			return NewPostmarkMailer(cfg.PostmarkServerToken, cfg.EmailSender)
		}
		log.Println("POSTMARK_SERVER_TOKEN is not set, falling back to log mailer")
	}
	return LogMailer{}
}

// EmailService renders the shop notifications and hands them to a Mailer
type EmailService struct {
	mailer   Mailer
	shopName string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(mailer Mailer, shopName string) *EmailService {
	return &EmailService{mailer: mailer, shopName: shopName}
}

// SendWelcomeEmail greets a newly registered user
func (es *EmailService) SendWelcomeEmail(user models.User) error {
	subject := fmt.Sprintf("Welcome to %s", es.shopName)
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Your %s account is ready. Happy shopping!",
		html.EscapeString(user.Name),
		html.EscapeString(es.shopName),
	)
	return es.mailer.SendEmail(user.Email, subject, htmlContent)
}

// SendOrderConfirmationEmail sends an order confirmation email to the user
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Order Confirmation"
	var lines strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&lines, "<li>%s × %d</li>", html.EscapeString(item.Name), item.Quantity)
	}
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) is <strong>%s</strong>.<ul>%s</ul>Total Amount: <strong>%.2f</strong><br><br>Thank you for shopping with us!",
		html.EscapeString(order.Shipping.FullName),
		order.ID,
		order.Status,
		lines.String(),
		order.TotalAmount,
	)
	return es.mailer.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderStatusEmail tells the customer their order moved to a new status
func (es *EmailService) SendOrderStatusEmail(toEmail string, order models.Order) error {
	subject := fmt.Sprintf("Your order is %s", order.Status)
	htmlContent := fmt.Sprintf(
		"Your order (ID: %s) is now <strong>%s</strong>.",
		order.ID,
		order.Status,
	)
	return es.mailer.SendEmail(toEmail, subject, htmlContent)
}

// stripTags turns the simple HTML bodies above into a text part
func stripTags(s string) string {
	s = strings.NewReplacer("<br>", "\n", "</li>", "\n").Replace(s)
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}
