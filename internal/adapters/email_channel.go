package adapters

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
)

const (
	confirmationSubject = "Payment Confirmation"
	confirmationBody    = "The payment has been successful. Congrats!"
)

// EmailChannel sends payment confirmations through an SMTP relay.
type EmailChannel struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailChannel(host string, port int, from string, password string) *EmailChannel {
	return &EmailChannel{
		dialer: gomail.NewDialer(host, port, from, password),
		from:   from,
	}
}

func (c *EmailChannel) Kind() model.ChannelKind {
	return model.ChannelEmail
}

func (c *EmailChannel) SendConfirmation(ctx context.Context, customer model.Customer) error {
	if customer.Contact.Email == "" {
		return &ports.NotificationError{Channel: model.ChannelEmail, Err: errors.New("customer has no email address")}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", customer.Contact.Email)
	m.SetHeader("Subject", confirmationSubject)
	m.SetBody("text/plain", confirmationBody)

	// gomail has no context support; bound the send with the caller's deadline.
	done := make(chan error, 1)
	go func() {
		done <- c.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return &ports.NotificationError{Channel: model.ChannelEmail, Err: err}
		}
		return nil
	case <-ctx.Done():
		return &ports.NotificationError{Channel: model.ChannelEmail, Err: ctx.Err()}
	}
}
