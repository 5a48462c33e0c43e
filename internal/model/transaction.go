package model

import (
	"time"
)

type PaymentProvider string

type ChargeStatus string

const (
	ChargeSucceeded ChargeStatus = "succeeded"
	ChargeFailed    ChargeStatus = "failed"
)

type ChannelKind string

const (
	ChannelEmail ChannelKind = "email"
	ChannelSMS   ChannelKind = "sms"
	ChannelNone  ChannelKind = "none"
)

type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Customer struct {
	Name    string      `json:"name"`
	Contact ContactInfo `json:"contact_info"`
}

// PaymentRequest identifies a funding instrument and an amount in minor
// currency units (cents).
type PaymentRequest struct {
	Amount   int64  `json:"amount"`
	Source   string `json:"source"`
	Currency string `json:"currency,omitempty"`
}

// ContactChannel is the contact dispatch decision, resolved once during
// validation. Email wins when both fields are present; Kind is ChannelNone
// when neither is usable.
type ContactChannel struct {
	Kind    ChannelKind
	Address string
}

type ChargeResult struct {
	ID     string       `json:"id"`
	Amount int64        `json:"amount"`
	Status ChargeStatus `json:"status"`
}

// TransactionRecord is one append-only entry describing an attempted
// transaction and its outcome. Records are never mutated after being written
// to the log file; the structured store mirrors the charge status for
// webhook reconciliation.
type TransactionRecord struct {
	ID           string
	CustomerName string
	Amount       int64
	Currency     string
	ChargeID     string
	Status       ChargeStatus
	Channel      ChannelKind
	CreatedAt    time.Time
}

// TransactionOutcome is what the pipeline hands back on a completed
// transaction. NotificationErr and LogErr are non-fatal by policy: the
// charge stands even when the confirmation or the log write failed.
type TransactionOutcome struct {
	Charge          *ChargeResult
	Channel         ChannelKind
	NotificationErr error
	LogErr          error
}
