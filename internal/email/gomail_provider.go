package email

import (
	"askpro_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// GomailProvider - SMTP отправитель поверх gomail
type GomailProvider struct {
	cfg *config.Config
}

func NewGomailProvider(cfg *config.Config) *GomailProvider {
	return &GomailProvider{cfg: cfg}
}

func (p *GomailProvider) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", p.cfg.Email.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUser,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}
