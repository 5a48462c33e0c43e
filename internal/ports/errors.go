package ports

import (
	"fmt"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
)

// ValidationError aborts a transaction before any external call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// GatewayError wraps an upstream charge failure. Fatal for the transaction:
// nothing downstream of the charge runs.
type GatewayError struct {
	Provider model.PaymentProvider
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: charge failed: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NotificationError reports a failed confirmation delivery. Non-fatal: the
// completed charge is never rolled back over a missed notification.
type NotificationError struct {
	Channel model.ChannelKind
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification via %s failed: %v", e.Channel, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// IOError reports a failed log or store write. Reported to the caller in the
// outcome, non-fatal to the already-completed charge.
type IOError struct {
	Sink string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s write failed: %v", e.Sink, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
