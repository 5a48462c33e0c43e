package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Mgobeaalcoba/payflow-service/internal/core"
	"github.com/Mgobeaalcoba/payflow-service/internal/metrics"
	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
	"github.com/Mgobeaalcoba/payflow-service/internal/validation"
)

const (
	chargeTimeout = 10 * time.Second
	notifyTimeout = 5 * time.Second
	storeTimeout  = 5 * time.Second
)

// TransactionPipeline sequences one transaction end to end:
// validate -> charge -> notify -> log. It is the single authority for
// ordering and error propagation; no component calls another directly.
//
// Validation and gateway failures abort the transaction and surface as the
// returned error. Notification and log failures never undo a completed
// charge; they travel back inside the TransactionOutcome.
type TransactionPipeline struct {
	gateways *core.GatewayRegistry
	channels *core.ChannelRegistry
	txlog    ports.ITransactionLog
	recorder ports.ITransactionRecorder
}

func NewTransactionPipeline(gateways *core.GatewayRegistry, channels *core.ChannelRegistry, txlog ports.ITransactionLog, recorder ports.ITransactionRecorder) *TransactionPipeline {
	return &TransactionPipeline{
		gateways: gateways,
		channels: channels,
		txlog:    txlog,
		recorder: recorder,
	}
}

func (p *TransactionPipeline) ProcessTransaction(ctx context.Context, provider model.PaymentProvider, customer model.Customer, payment model.PaymentRequest) (*model.TransactionOutcome, error) {
	metrics.TransactionsTotal.Inc()

	// Validating: fail fast, before any external call.
	if err := validation.ValidateCustomer(customer); err != nil {
		metrics.TransactionsRejectedTotal.Inc()
		return nil, err
	}
	if err := validation.ValidatePayment(payment); err != nil {
		metrics.TransactionsRejectedTotal.Inc()
		return nil, err
	}

	// Contact dispatch is decided once, here; the notify step only matches
	// on the resolved kind.
	contact := validation.ResolveContactChannel(customer.Contact)

	gateway, err := p.gateways.Get(provider)
	if err != nil {
		metrics.TransactionsRejectedTotal.Inc()
		return nil, err
	}

	// Charging. A failure here aborts the transaction: nothing is notified
	// and no record is written.
	chargeCtx, cancel := context.WithTimeout(ctx, chargeTimeout)
	defer cancel()

	start := time.Now()
	charge, err := gateway.Charge(chargeCtx, payment, "Charge for "+customer.Name)
	metrics.ChargeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.TransactionsFailedTotal.Inc()
		return nil, err
	}

	outcome := &model.TransactionOutcome{
		Charge:  charge,
		Channel: contact.Kind,
	}

	// Notifying: best effort, exactly one channel or none.
	outcome.NotificationErr = p.notify(ctx, contact, customer)

	// Logging: the charge outcome is recorded regardless of how the
	// notification went.
	rec := model.TransactionRecord{
		ID:           uuid.NewString(),
		CustomerName: customer.Name,
		Amount:       payment.Amount,
		Currency:     payment.Currency,
		ChargeID:     charge.ID,
		Status:       charge.Status,
		Channel:      contact.Kind,
		CreatedAt:    time.Now().UTC(),
	}
	outcome.LogErr = p.persist(ctx, rec)

	metrics.TransactionsSucceededTotal.Inc()
	return outcome, nil
}

func (p *TransactionPipeline) notify(ctx context.Context, contact model.ContactChannel, customer model.Customer) error {
	switch contact.Kind {
	case model.ChannelEmail, model.ChannelSMS:
		channel, err := p.channels.Get(contact.Kind)
		if err != nil {
			metrics.NotificationsFailedTotal.WithLabelValues(string(contact.Kind)).Inc()
			return &ports.NotificationError{Channel: contact.Kind, Err: err}
		}

		notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()

		if err := channel.SendConfirmation(notifyCtx, customer); err != nil {
			metrics.NotificationsFailedTotal.WithLabelValues(string(contact.Kind)).Inc()
			log.Printf("notification failed for %s: %v", customer.Name, err)
			return err
		}

		metrics.NotificationsSentTotal.WithLabelValues(string(contact.Kind)).Inc()
		return nil

	case model.ChannelNone:
		metrics.NotificationsSkippedTotal.Inc()
		log.Printf("no valid contact information for %s, skipping notification", customer.Name)
		return nil

	default:
		return &ports.NotificationError{Channel: contact.Kind, Err: fmt.Errorf("unknown contact channel %s", contact.Kind)}
	}
}

func (p *TransactionPipeline) persist(ctx context.Context, rec model.TransactionRecord) error {
	var firstErr error

	if err := p.txlog.Append(rec); err != nil {
		metrics.LogAppendFailuresTotal.Inc()
		log.Printf("transaction log append failed: %v", err)
		firstErr = err
	}

	if p.recorder != nil {
		storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()

		if err := p.recorder.Record(storeCtx, &rec); err != nil {
			log.Printf("transaction store write failed: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// HandleWebhook applies an asynchronous processor event to the structured
// store. The append-only log file is never rewritten from webhooks.
func (p *TransactionPipeline) HandleWebhook(ctx context.Context, provider model.PaymentProvider, raw []byte, headers map[string][]string) (*model.ChargeEvent, error) {
	gateway, err := p.gateways.Get(provider)
	if err != nil {
		return nil, err
	}

	parser, ok := gateway.(ports.IWebhookParser)
	if !ok {
		return nil, fmt.Errorf("gateway %s does not deliver webhooks", provider)
	}

	event, err := parser.ParseWebhook(ctx, raw, headers)
	if err != nil {
		return nil, err
	}

	if p.recorder == nil {
		return event, nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	switch event.Type {
	case ports.ChargeSucceededEvent:
		err = p.recorder.UpdateStatus(storeCtx, event.ChargeID, model.ChargeSucceeded)
	case ports.ChargeFailedEvent:
		err = p.recorder.UpdateStatus(storeCtx, event.ChargeID, model.ChargeFailed)
	default:
		return event, nil
	}
	if err != nil {
		return nil, err
	}

	return event, nil
}

// FindTransaction looks a recorded transaction up by its charge id.
func (p *TransactionPipeline) FindTransaction(ctx context.Context, chargeID string) (*model.TransactionRecord, error) {
	if p.recorder == nil {
		return nil, errors.New("no transaction store configured")
	}

	storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return p.recorder.FindByChargeID(storeCtx, chargeID)
}
