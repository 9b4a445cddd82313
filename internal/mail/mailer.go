package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional email. Delivery is best effort; callers decide
// whether a failure is surfaced (admin resend) or swallowed (signup welcome).
type Mailer interface {
	SendWelcome(ctx context.Context, to, referralCode string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	SiteURL  string
}

func (c *SMTPConfig) IsConfigured() bool {
	return c != nil && c.Host != ""
}

// SMTPMailer delivers the welcome email over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	site   string
}

func NewSMTPMailer(cfg *SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		site:   cfg.SiteURL,
	}
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, referralCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	referralLink := fmt.Sprintf("%s?ref=%s", m.site, referralCode)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "You're on the waitlist 🎉")
	msg.SetBody("text/plain", welcomeText(referralLink))
	msg.AddAlternative("text/html", welcomeHTML(referralLink))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: send welcome to %s: %w", to, err)
	}
	return nil
}

func welcomeText(referralLink string) string {
	return fmt.Sprintf(`Hi there,

Thanks for joining the waitlist!

You're now in line for early access. We'll notify you as soon as it opens;
early waitlist members get priority.

Welcome aboard,
The Team

P.S. Know someone who'd love this? Share your personal link and we'll bump
you up the list for referrals: %s`, referralLink)
}

func welcomeHTML(referralLink string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:-apple-system,Segoe UI,Roboto,Arial,sans-serif;background-color:#f5f5f5;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f5f5f5;padding:40px 20px;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
        <tr><td style="padding:40px 30px;">
          <h1 style="margin:0 0 20px 0;color:#1a1a1a;font-size:24px;">Hi there,</h1>
          <p style="margin:0 0 20px 0;color:#4a4a4a;font-size:16px;line-height:1.6;">Thanks for joining the waitlist!</p>
          <p style="margin:0 0 20px 0;color:#4a4a4a;font-size:16px;line-height:1.6;">You're now in line for early access. We'll notify you as soon as it opens; early waitlist members get priority.</p>
          <p style="margin:0 0 10px 0;color:#4a4a4a;font-size:16px;line-height:1.6;">Welcome aboard,<br><strong>The Team</strong></p>
        </td></tr>
        <tr><td style="background-color:#f8fafc;padding:30px;border-top:1px solid #e2e8f0;">
          <p style="margin:0 0 15px 0;color:#4a4a4a;font-size:14px;line-height:1.6;"><strong>P.S.</strong> Know someone who'd love this? Share your personal link and we'll bump you up the list for referrals:</p>
          <p style="margin:0;"><a href="%s" style="color:#3b82f6;font-size:14px;word-break:break-all;">%s</a></p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`, referralLink, referralLink)
}
