package utils

import "gopkg.in/gomail.v2"

// EmailSender is satisfied by *gomail.Dialer.
type EmailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

func BuildEmail(sender, to, subject, body string) *gomail.Message {
	message := gomail.NewMessage()
	message.SetHeader("From", sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	return message
}

func SendEmail(dialer EmailSender, message *gomail.Message) error {
	if err := dialer.DialAndSend(message); err != nil {
		return err
	}

	return nil
}
