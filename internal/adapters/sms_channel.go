package adapters

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
)

const smsBody = "Ahoy! Thank you for your payment!"

// SMSChannel sends payment confirmations through the Twilio messaging API.
type SMSChannel struct {
	client              *twilio.RestClient
	messagingServiceSID string
}

func NewSMSChannel(accountSID string, authToken string, messagingServiceSID string) *SMSChannel {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSChannel{
		client:              client,
		messagingServiceSID: messagingServiceSID,
	}
}

func (c *SMSChannel) Kind() model.ChannelKind {
	return model.ChannelSMS
}

func (c *SMSChannel) SendConfirmation(ctx context.Context, customer model.Customer) error {
	if customer.Contact.Phone == "" {
		return &ports.NotificationError{Channel: model.ChannelSMS, Err: errors.New("customer has no phone number")}
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(customer.Contact.Phone)
	params.SetMessagingServiceSid(c.messagingServiceSID)
	params.SetBody(smsBody)

	// The Twilio client has no context support; bound the send with the
	// caller's deadline.
	done := make(chan error, 1)
	go func() {
		_, err := c.client.Api.CreateMessage(params)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return &ports.NotificationError{Channel: model.ChannelSMS, Err: err}
		}
		return nil
	case <-ctx.Done():
		return &ports.NotificationError{Channel: model.ChannelSMS, Err: ctx.Err()}
	}
}
