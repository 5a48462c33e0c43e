package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Mgobeaalcoba/payflow-service/internal/core"
	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
	"github.com/Mgobeaalcoba/payflow-service/internal/service"
)

const fakeProvider model.PaymentProvider = "fake"

type fixture struct {
	gateway  *FakeGateway
	email    *FakeChannel
	sms      *FakeChannel
	txlog    *FakeLog
	recorder *FakeRecorder
	pipeline *service.TransactionPipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		gateway:  NewFakeGateway(),
		email:    &FakeChannel{ChannelKind: model.ChannelEmail},
		sms:      &FakeChannel{ChannelKind: model.ChannelSMS},
		txlog:    &FakeLog{},
		recorder: NewFakeRecorder(),
	}

	gateways := core.NewGatewayRegistry()
	gateways.Register(fakeProvider, f.gateway)

	channels := core.NewChannelRegistry()
	channels.Register(f.email)
	channels.Register(f.sms)

	f.pipeline = service.NewTransactionPipeline(gateways, channels, f.txlog, f.recorder)
	return f
}

func validCustomer() model.Customer {
	return model.Customer{
		Name:    "Jane Doe",
		Contact: model.ContactInfo{Email: "jane@example.com"},
	}
}

func validPayment() model.PaymentRequest {
	return model.PaymentRequest{Amount: 1500, Source: "tok_visa"}
}

func (f *fixture) assertNoSideEffects(t *testing.T) {
	t.Helper()
	if f.gateway.CallCount != 0 {
		t.Fatalf("expected zero gateway calls, got %d", f.gateway.CallCount)
	}
	if f.email.CallCount != 0 || f.sms.CallCount != 0 {
		t.Fatal("expected zero channel sends")
	}
	if len(f.txlog.Records) != 0 {
		t.Fatalf("expected empty log, got %d records", len(f.txlog.Records))
	}
	if len(f.recorder.ByCharge) != 0 {
		t.Fatalf("expected empty store, got %d records", len(f.recorder.ByCharge))
	}
}

func TestAbortsOnMissingName(t *testing.T) {
	f := newFixture(t)
	customer := validCustomer()
	customer.Name = ""

	_, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, customer, validPayment())

	var vErr *ports.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	f.assertNoSideEffects(t)
}

func TestAbortsOnMissingContactInfo(t *testing.T) {
	f := newFixture(t)
	customer := model.Customer{Name: "Jane Doe"}

	_, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, customer, validPayment())

	var vErr *ports.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	f.assertNoSideEffects(t)
}

func TestAbortsOnMissingSource(t *testing.T) {
	f := newFixture(t)
	payment := model.PaymentRequest{Amount: 1500}

	_, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, validCustomer(), payment)

	var vErr *ports.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	f.assertNoSideEffects(t)
}

func TestAbortsOnUnknownProvider(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.ProcessTransaction(context.Background(), "paypal", validCustomer(), validPayment())
	if err == nil {
		t.Fatal("expected error for unconfigured provider")
	}
	f.assertNoSideEffects(t)
}

func TestSuccessfulTransactionWithEmail(t *testing.T) {
	f := newFixture(t)

	outcome, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, validCustomer(), validPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Charge.Status != model.ChargeSucceeded {
		t.Fatalf("expected succeeded charge, got %s", outcome.Charge.Status)
	}
	if outcome.Channel != model.ChannelEmail {
		t.Fatalf("expected email channel, got %s", outcome.Channel)
	}
	if f.email.CallCount != 1 {
		t.Fatalf("expected exactly one email send, got %d", f.email.CallCount)
	}
	if f.sms.CallCount != 0 {
		t.Fatalf("expected zero sms sends, got %d", f.sms.CallCount)
	}
	if len(f.txlog.Records) != 1 {
		t.Fatalf("expected one log record, got %d", len(f.txlog.Records))
	}

	rec := f.txlog.Records[0]
	if rec.CustomerName != "Jane Doe" || rec.Amount != 1500 || rec.Status != model.ChargeSucceeded {
		t.Fatalf("unexpected log record: %+v", rec)
	}

	stored, err := f.recorder.FindByChargeID(context.Background(), outcome.Charge.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected transaction record in store")
	}
}

func TestSuccessfulTransactionWithPhone(t *testing.T) {
	f := newFixture(t)
	customer := model.Customer{
		Name:    "Jane Doe",
		Contact: model.ContactInfo{Phone: "+5491138089556"},
	}

	outcome, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, customer, validPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Channel != model.ChannelSMS {
		t.Fatalf("expected sms channel, got %s", outcome.Channel)
	}
	if f.sms.CallCount != 1 {
		t.Fatalf("expected exactly one sms send, got %d", f.sms.CallCount)
	}
	if f.email.CallCount != 0 {
		t.Fatalf("expected zero email sends, got %d", f.email.CallCount)
	}
}

func TestEmailPreferredWhenBothPresent(t *testing.T) {
	f := newFixture(t)
	customer := model.Customer{
		Name:    "Jane Doe",
		Contact: model.ContactInfo{Email: "jane@example.com", Phone: "+5491138089556"},
	}

	outcome, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, customer, validPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Channel != model.ChannelEmail {
		t.Fatalf("expected email channel, got %s", outcome.Channel)
	}
	if f.email.CallCount != 1 || f.sms.CallCount != 0 {
		t.Fatalf("expected email only, got email=%d sms=%d", f.email.CallCount, f.sms.CallCount)
	}
}

func TestNoUsableContactSkipsNotification(t *testing.T) {
	f := newFixture(t)
	// Presence validation passes, but the phone is malformed, so the contact
	// resolves to none.
	customer := model.Customer{
		Name:    "Jane Doe",
		Contact: model.ContactInfo{Phone: "not-a-number"},
	}

	outcome, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, customer, validPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Channel != model.ChannelNone {
		t.Fatalf("expected no channel, got %s", outcome.Channel)
	}
	if outcome.NotificationErr != nil {
		t.Fatalf("no-contact must not be an error, got %v", outcome.NotificationErr)
	}
	if f.email.CallCount != 0 || f.sms.CallCount != 0 {
		t.Fatal("expected zero channel sends")
	}
	// The charge still completed, so the transaction is still logged.
	if len(f.txlog.Records) != 1 {
		t.Fatalf("expected one log record, got %d", len(f.txlog.Records))
	}
	if f.txlog.Records[0].Channel != model.ChannelNone {
		t.Fatalf("expected no-contact channel in record, got %s", f.txlog.Records[0].Channel)
	}
}

func TestGatewayFailureAbortsTransaction(t *testing.T) {
	f := newFixture(t)
	f.gateway.Err = ErrFakeGateway

	outcome, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, validCustomer(), validPayment())

	var gErr *ports.GatewayError
	if !errors.As(err, &gErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if outcome != nil {
		t.Fatal("expected no outcome on gateway failure")
	}
	if f.gateway.CallCount != 1 {
		t.Fatalf("expected exactly one charge attempt, got %d", f.gateway.CallCount)
	}
	if f.email.CallCount != 0 || f.sms.CallCount != 0 {
		t.Fatal("expected zero channel sends after gateway failure")
	}
	if len(f.txlog.Records) != 0 {
		t.Fatal("expected no log record after gateway failure")
	}
	if len(f.recorder.ByCharge) != 0 {
		t.Fatal("expected no stored record after gateway failure")
	}
}

func TestNotificationFailureIsNonFatal(t *testing.T) {
	f := newFixture(t)
	f.email.Err = ErrFakeChannel

	outcome, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, validCustomer(), validPayment())
	if err != nil {
		t.Fatalf("transaction must still succeed, got %v", err)
	}

	var nErr *ports.NotificationError
	if !errors.As(outcome.NotificationErr, &nErr) {
		t.Fatalf("expected NotificationError in outcome, got %v", outcome.NotificationErr)
	}
	if outcome.Charge.Status != model.ChargeSucceeded {
		t.Fatalf("charge must stand, got %s", outcome.Charge.Status)
	}
	// The log append still happens.
	if len(f.txlog.Records) != 1 {
		t.Fatalf("expected one log record, got %d", len(f.txlog.Records))
	}
}

func TestLogFailureIsReportedNotFatal(t *testing.T) {
	f := newFixture(t)
	f.txlog.Err = ErrFakeLog

	outcome, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, validCustomer(), validPayment())
	if err != nil {
		t.Fatalf("transaction must still succeed, got %v", err)
	}

	var ioErr *ports.IOError
	if !errors.As(outcome.LogErr, &ioErr) {
		t.Fatalf("expected IOError in outcome, got %v", outcome.LogErr)
	}
	if outcome.Charge.Status != model.ChargeSucceeded {
		t.Fatalf("charge must stand, got %s", outcome.Charge.Status)
	}
}

func TestWebhookUpdatesStoredStatus(t *testing.T) {
	f := newFixture(t)

	// Run one transaction so the store holds a record.
	outcome, err := f.pipeline.ProcessTransaction(context.Background(), fakeProvider, validCustomer(), validPayment())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Swap in a webhook-capable gateway delivering a failure event for the
	// same charge.
	webhookGateway := &FakeWebhookGateway{
		Event: &model.ChargeEvent{Type: ports.ChargeFailedEvent, ChargeID: outcome.Charge.ID},
	}
	gateways := core.NewGatewayRegistry()
	gateways.Register(fakeProvider, webhookGateway)
	pipeline := service.NewTransactionPipeline(gateways, core.NewChannelRegistry(), f.txlog, f.recorder)

	event, err := pipeline.HandleWebhook(context.Background(), fakeProvider, []byte("{}"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Type != ports.ChargeFailedEvent {
		t.Fatalf("expected %s, got %s", ports.ChargeFailedEvent, event.Type)
	}

	stored, err := f.recorder.FindByChargeID(context.Background(), outcome.Charge.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != model.ChargeFailed {
		t.Fatalf("expected stored status failed, got %s", stored.Status)
	}
}

func TestWebhookRejectedForNonWebhookGateway(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.HandleWebhook(context.Background(), fakeProvider, []byte("{}"), nil)
	if err == nil {
		t.Fatal("expected error for gateway without webhook support")
	}
}
