package notify

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Name string
	Data []byte
}

type Message struct {
	To          []string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var ErrNoRecipient = errors.New("no recipient")

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP sends through an SMTP relay. from defaults to the username.
func NewSMTP(host string, port int, username, password, from string) Mailer {
	if from == "" {
		from = username
	}
	return &smtpMailer{dialer: gomail.NewDialer(host, port, username, password), from: from}
}

func (s *smtpMailer) Send(ctx context.Context, msg Message) error {
	m, err := compose(s.from, msg)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(m)
}

func compose(from string, msg Message) (*gomail.Message, error) {
	to := make([]string, 0, len(msg.To))
	for _, r := range msg.To {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	if len(to) == 0 {
		return nil, ErrNoRecipient
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return m, nil
}

// LogMailer only logs; used when SMTP is not configured.
type LogMailer struct {
	log  *zap.Logger
	Sent []Message
}

func NewLog(log *zap.Logger) *LogMailer { return &LogMailer{log: log} }

func (l *LogMailer) Send(_ context.Context, msg Message) error {
	if _, err := compose("noreply@localhost", msg); err != nil {
		return err
	}
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Name)
	}
	l.log.Info("mail not sent: smtp disabled",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Strings("attachments", names),
	)
	l.Sent = append(l.Sent, msg)
	return nil
}
