package lib

import (
	"log"
	"os"

	"github.com/wneessen/go-mail"
)

// SMTPNewGmail builds a Gmail SMTP client from app-password credentials.
// Used as the delivery fallback when no OAuth refresh token is configured.
func SMTPNewGmail() (*mail.Client, error) {
	host := "smtp.gmail.com"
	user := os.Getenv("GMAIL_USERNAME")
	pass := os.Getenv("GMAIL_PASSWORD")
	port := 587
	c, err := mail.NewClient(
		host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(pass),
	)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}

type SendMailInput struct {
	From    string
	To      string
	Subject string
	Body    string
	Html    bool
}

func SendMail(input *SendMailInput) error {
	c, err := SMTPNewGmail()
	if err != nil {
		return err
	}
	msg := mail.NewMsg()
	if err := msg.From(input.From); err != nil {
		log.Printf("Failed to set From address: %s\n", err.Error())
	}
	if err := msg.To(input.To); err != nil {
		log.Printf("Failed to set To address: %s\n", err.Error())
	}
	msg.Subject(input.Subject)
	if input.Html {
		msg.SetBodyString(mail.TypeTextHTML, input.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, input.Body)
	}
	if err := c.DialAndSend(msg); err != nil {
		return err
	}
	return nil
}
