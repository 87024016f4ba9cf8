package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPConfig - параметры почтового сервера.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recruiter string
}

var ErrRecruiterNotConfigured = errors.New("notify: recruiter address not configured")

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends mail through an SMTP relay. smtp.SendMail upgrades to
// STARTTLS when the server offers it.
type SMTPNotifier struct {
	cfg  SMTPConfig
	send sendFunc
	now  func() time.Time
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail, now: time.Now}
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<html>
<body>
<h3>Application Received</h3>
<p>Hi {{.FullName}}, thank you for applying for the internship.</p>
<p>Your Application ID is: <strong>{{.ApplicationID}}</strong></p>
<p>You can track your application status on your dashboard.</p>
<br>
<p>Best Regards,</p>
<p>Internship Team</p>
</body>
</html>
`))

func (n *SMTPNotifier) NotifyApplicant(ctx context.Context, c Confirmation) error {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, c); err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}
	msg := n.message(c.To, "Internship Application Received", "text/html", body.String())
	return n.deliver(ctx, c.To, msg)
}

func (n *SMTPNotifier) NotifyRecruiter(ctx context.Context, s Submission) error {
	if n.cfg.Recruiter == "" {
		return ErrRecruiterNotConfigured
	}
	body := fmt.Sprintf("New application received!\n\nName: %s\nEmail: %s\nCollege: %s\nDegree: %s\nScore: %d\n\nApplication ID: %s\n",
		s.FullName, s.Email, s.College, s.Degree, s.OverallScore, s.ApplicationID)
	msg := n.message(n.cfg.Recruiter, "Inbound: New Internship Application", "text/plain", body)
	return n.deliver(ctx, n.cfg.Recruiter, msg)
}

func (n *SMTPNotifier) deliver(ctx context.Context, to string, msg []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	if err := n.send(addr, auth, n.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func (n *SMTPNotifier) message(to, subject, contentType, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + n.cfg.From + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("Date: " + n.now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
