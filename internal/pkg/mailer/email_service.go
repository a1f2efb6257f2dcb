package mailer

import (
	"fmt"
	"html"
	"strings"

	"intellilab-gc-be/pkg/insight"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendInsightAlert(toEmail string, insights []insight.Correlation) error
}

// Sender is the part of gomail.Dialer the service needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender      Sender
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		sender:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func NewEmailServiceWithSender(sender Sender, senderEmail, senderName string) IEmailService {
	return &emailService{sender: sender, senderEmail: senderEmail, senderName: senderName}
}

func (s *emailService) SendInsightAlert(toEmail string, insights []insight.Correlation) error {
	if toEmail == "" || len(insights) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[IntelliLab GC] %d high-priority insight(s)", len(insights)))
	m.SetBody("text/html", renderAlert(insights))

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send insight alert to %s: %w", toEmail, err)
	}
	return nil
}

func renderAlert(insights []insight.Correlation) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`)
	b.WriteString(`<h2>High-priority lab insights</h2><ul>`)
	for _, c := range insights {
		fmt.Fprintf(&b, `<li><strong>%s</strong><p>%s</p><p><em>%s</em></p></li>`,
			html.EscapeString(c.Title),
			html.EscapeString(c.Description),
			html.EscapeString(c.Recommendation),
		)
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}
