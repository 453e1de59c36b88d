package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"cercle-be/internal/config"
)

// Mailer delivers templated HTML messages carrying signed action links.
type Mailer interface {
	SendActivation(to, name, link string) error
	SendPasswordReset(to, name, link string) error
}

type smtpMailer struct {
	host string
	port string
	from string
	pass string
}

func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		from: cfg.MailFrom,
		pass: cfg.MailPass,
	}
}

var activationTmpl = template.Must(template.New("activation").Parse(`
<html>
<body>
  <p>Bonjour {{.Name}},</p>
  <p>Your account has been created. Activate it within 48 hours:</p>
  <p><a href="{{.Link}}">Activate my account</a></p>
  <p>If you did not expect this message, you can ignore it.</p>
</body>
</html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<html>
<body>
  <p>Bonjour {{.Name}},</p>
  <p>A password reset was requested for your account. The link below is
  valid for one hour:</p>
  <p><a href="{{.Link}}">Reset my password</a></p>
  <p>If you did not request this, your password is unchanged.</p>
</body>
</html>`))

type mailData struct {
	Name string
	Link string
}

func (m *smtpMailer) SendActivation(to, name, link string) error {
	return m.send(to, "Activate your account", activationTmpl, mailData{Name: name, Link: link})
}

func (m *smtpMailer) SendPasswordReset(to, name, link string) error {
	return m.send(to, "Password reset", resetTmpl, mailData{Name: name, Link: link})
}

func (m *smtpMailer) send(to, subject string, tmpl *template.Template, data mailData) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render mail template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.from, to, subject, body.String(),
	))

	auth := smtp.PlainAuth("", m.from, m.pass, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
