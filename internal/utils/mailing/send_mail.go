package mailing

import (
	"FoodSaver-Backend/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPEmail != ""
}

func (c MailConfig) message(toEmail string, subject string, body string) *gomail.Message {
	mailer := gomail.NewMessage()
	if c.SMTPSender != "" {
		mailer.SetAddressHeader("From", c.SMTPEmail, c.SMTPSender)
	} else {
		mailer.SetHeader("From", c.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	return mailer
}

func SendMail(toEmail string, subject string, body string) error {
	emailConfig := LoadMailConfig()

	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(emailConfig.message(toEmail, subject, body))
}
