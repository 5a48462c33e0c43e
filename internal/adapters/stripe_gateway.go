package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
	"github.com/stripe/stripe-go/v72/webhook"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
	"github.com/Mgobeaalcoba/payflow-service/pkg/utils"
)

const defaultCurrency = "usd"

type StripeGateway struct {
	apiKey        string
	webhookSecret string
}

func NewStripeGateway(apiKey string, webhookSecret string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
	}
}

func (s *StripeGateway) Name() model.PaymentProvider {
	var ppStripe model.PaymentProvider = "stripe"
	return ppStripe
}

func (s *StripeGateway) Charge(ctx context.Context, req model.PaymentRequest, description string) (*model.ChargeResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	params := &stripe.ChargeParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	if err := params.SetSource(req.Source); err != nil {
		return nil, &ports.GatewayError{Provider: s.Name(), Err: err}
	}

	ch, err := charge.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, &ports.GatewayError{Provider: s.Name(), Err: fmt.Errorf("%s: %s", stripeErr.Code, stripeErr.Msg)}
		}
		return nil, &ports.GatewayError{Provider: s.Name(), Err: err}
	}

	status := model.ChargeFailed
	if string(ch.Status) == "succeeded" {
		status = model.ChargeSucceeded
	}

	return &model.ChargeResult{
		ID:     ch.ID,
		Amount: ch.Amount,
		Status: status,
	}, nil
}

func (s *StripeGateway) ParseWebhook(ctx context.Context, raw []byte, headers map[string][]string) (*model.ChargeEvent, error) {
	sigHeader := utils.GetHeader(headers, "Stripe-Signature")
	if sigHeader == "" {
		return nil, errors.New("missing stripe-signature header")
	}

	event, err := webhook.ConstructEvent(raw, sigHeader, s.webhookSecret)
	if err != nil {
		return nil, errors.New("invalid webhook signature")
	}

	switch event.Type {
	case "charge.succeeded", "charge.failed":
		var ch stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
			return nil, errors.New("failed to parse event data")
		}

		eventType := ports.ChargeSucceededEvent
		if event.Type == "charge.failed" {
			eventType = ports.ChargeFailedEvent
		}

		return &model.ChargeEvent{
			Type:     eventType,
			ChargeID: ch.ID,
			Payload: model.ChargeResult{
				ID:     ch.ID,
				Amount: ch.Amount,
				Status: model.ChargeStatus(ch.Status),
			},
		}, nil

	default:
		return &model.ChargeEvent{
			Type:    event.Type,
			Payload: "Omitted",
		}, nil
	}
}
