// Package notify delivers composed reports by email.
package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned by Send when SMTP settings are incomplete.
var ErrNotConfigured = errors.New("notify: SMTP not configured")

// ErrNoRecipients is returned when a message has no To address.
var ErrNoRecipients = errors.New("notify: no recipients")

// SMTPConfig holds the mail server settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Configured reports whether enough settings are present to send mail.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port != "" && c.User != "" && c.Pass != ""
}

// Message is one email with an optional attachment. To and Cc are
// comma-separated address lists.
type Message struct {
	To          string
	Cc          string
	Subject     string
	Body        string
	Attachment  []byte
	FileName    string
	ContentType string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends messages through one SMTP server.
type Mailer struct {
	cfg  SMTPConfig
	log  *zap.Logger
	send sendFunc
}

// NewMailer returns a Mailer for cfg. It always succeeds; Send reports
// ErrNotConfigured when cfg is incomplete.
func NewMailer(cfg SMTPConfig, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

// Enabled reports whether the mailer can send.
func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Configured()
}

// Send delivers msg to every To and Cc address.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}
	to := splitAndTrim(msg.To)
	if len(to) == 0 {
		return ErrNoRecipients
	}
	cc := splitAndTrim(msg.Cc)
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := buildMessage(m.cfg.From, to, cc, msg)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	rcpt := append(append([]string{}, to...), cc...)
	if err := m.send(addr, auth, m.cfg.From, rcpt, raw); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Info("report emailed", zap.Strings("to", to), zap.Strings("cc", cc), zap.String("file", msg.FileName))
	return nil
}

func buildMessage(from string, to, cc []string, msg Message) ([]byte, error) {
	boundary := "radreport-" + uuid.NewString()
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	if len(cc) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", strings.Join(cc, ", "))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", boundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")
	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(msg.Body)); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	buf.WriteString("\r\n\r\n")

	if len(msg.Attachment) > 0 {
		ct := msg.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", ct)
		fmt.Fprintf(&buf, "Content-Disposition: %s\r\n",
			mime.FormatMediaType("attachment", map[string]string{"filename": msg.FileName}))
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		buf.WriteString("\r\n")

		encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
		for i := 0; i < len(encoded); i += 76 {
			end := min(i+76, len(encoded))
			buf.WriteString(encoded[i:end])
			buf.WriteString("\r\n")
		}
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes(), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
