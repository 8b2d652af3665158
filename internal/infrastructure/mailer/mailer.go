package mailer

import (
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"github.com/vparmar-art/MarketplaceApp/config"
	"github.com/vparmar-art/MarketplaceApp/pkg/utils"
	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer utils.EmailSender
	sender string
	cb     *gobreaker.CircuitBreaker[any]
}

func CreateMailer(conf config.SMTPConfig, cb *gobreaker.CircuitBreaker[any]) *Mailer {
	return CreateMailerWithDialer(gomail.NewDialer(conf.Host, conf.Port, conf.Sender, conf.Password), conf.Sender, cb)
}

func CreateMailerWithDialer(dialer utils.EmailSender, sender string, cb *gobreaker.CircuitBreaker[any]) *Mailer {
	return &Mailer{
		dialer: dialer,
		sender: sender,
		cb:     cb,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	message := utils.BuildEmail(m.sender, to, subject, body)

	_, err := m.cb.Execute(func() (any, error) {
		return nil, utils.SendEmail(m.dialer, message)
	})
	if err != nil {
		log.Error().Err(err).Str("component", "Send").Str("to", to).Msg("")
		return err
	}

	return nil
}
