package mail

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTPSender mengirim email HTML lewat SMTP biasa (gomail).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func NewSMTPSender(cfg Config, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger.Named("mail.smtp"),
	}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("send email failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
