package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
)

// Common test errors
var (
	ErrFakeGateway = errors.New("fake gateway error")
	ErrFakeChannel = errors.New("fake channel error")
	ErrFakeLog     = errors.New("fake log error")
)

// FakeGateway implements ports.IPaymentGateway for testing
type FakeGateway struct {
	mu          sync.Mutex
	CallCount   int
	LastRequest model.PaymentRequest
	Result      *model.ChargeResult
	Err         error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		Result: &model.ChargeResult{ID: "ch_fake_1", Amount: 1500, Status: model.ChargeSucceeded},
	}
}

func (g *FakeGateway) Name() model.PaymentProvider { return "fake" }

func (g *FakeGateway) Charge(ctx context.Context, req model.PaymentRequest, description string) (*model.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.CallCount++
	g.LastRequest = req

	if g.Err != nil {
		return nil, &ports.GatewayError{Provider: g.Name(), Err: g.Err}
	}
	return g.Result, nil
}

// FakeWebhookGateway adds webhook parsing on top of FakeGateway
type FakeWebhookGateway struct {
	FakeGateway
	Event    *model.ChargeEvent
	ParseErr error
}

func (g *FakeWebhookGateway) ParseWebhook(ctx context.Context, raw []byte, headers map[string][]string) (*model.ChargeEvent, error) {
	if g.ParseErr != nil {
		return nil, g.ParseErr
	}
	return g.Event, nil
}

// FakeChannel implements ports.INotificationChannel for testing
type FakeChannel struct {
	mu           sync.Mutex
	ChannelKind  model.ChannelKind
	CallCount    int
	LastCustomer model.Customer
	Err          error
}

func (c *FakeChannel) Kind() model.ChannelKind { return c.ChannelKind }

func (c *FakeChannel) SendConfirmation(ctx context.Context, customer model.Customer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.CallCount++
	c.LastCustomer = customer

	if c.Err != nil {
		return &ports.NotificationError{Channel: c.ChannelKind, Err: c.Err}
	}
	return nil
}

// FakeLog implements ports.ITransactionLog for testing
type FakeLog struct {
	mu      sync.Mutex
	Records []model.TransactionRecord
	Err     error
}

func (l *FakeLog) Append(rec model.TransactionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Err != nil {
		return &ports.IOError{Sink: "fake log", Err: l.Err}
	}
	l.Records = append(l.Records, rec)
	return nil
}

// FakeRecorder implements ports.ITransactionRecorder for testing
type FakeRecorder struct {
	mu        sync.Mutex
	ByCharge  map[string]*model.TransactionRecord
	RecordErr error
	UpdateErr error
}

func NewFakeRecorder() *FakeRecorder {
	return &FakeRecorder{ByCharge: make(map[string]*model.TransactionRecord)}
}

func (r *FakeRecorder) Record(ctx context.Context, rec *model.TransactionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.RecordErr != nil {
		return &ports.IOError{Sink: "fake store", Err: r.RecordErr}
	}
	copied := *rec
	r.ByCharge[rec.ChargeID] = &copied
	return nil
}

func (r *FakeRecorder) FindByChargeID(ctx context.Context, chargeID string) (*model.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ByCharge[chargeID], nil
}

func (r *FakeRecorder) UpdateStatus(ctx context.Context, chargeID string, status model.ChargeStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	rec, ok := r.ByCharge[chargeID]
	if !ok {
		return errors.New("no record for charge " + chargeID)
	}
	rec.Status = status
	return nil
}
