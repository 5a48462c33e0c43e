package ports

import (
	"context"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
)

const (
	ChargeSucceededEvent = "charge_succeeded"
	ChargeFailedEvent    = "charge_failed"
)

// IPaymentGateway charges a payment source through an external processor.
// One outbound call per invocation; no retries or idempotency keys at this
// layer. Callers bound the call with a context deadline.
type IPaymentGateway interface {
	Name() model.PaymentProvider
	Charge(ctx context.Context, req model.PaymentRequest, description string) (*model.ChargeResult, error)
}

// IWebhookParser verifies and decodes an asynchronous event pushed by the
// external processor. Implemented alongside IPaymentGateway by adapters
// whose processor delivers webhooks.
type IWebhookParser interface {
	ParseWebhook(ctx context.Context, raw []byte, headers map[string][]string) (*model.ChargeEvent, error)
}

// INotificationChannel delivers a payment confirmation through exactly one
// medium. Implementations read the contact field their medium requires and
// fail with *NotificationError when it is absent or the send fails.
type INotificationChannel interface {
	Kind() model.ChannelKind
	SendConfirmation(ctx context.Context, customer model.Customer) error
}
