package ports

import (
	"context"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
)

// ITransactionLog is the durable append-only sink every completed
// transaction is written to. Appends must be atomic: concurrent callers may
// never interleave the two lines of one record.
type ITransactionLog interface {
	Append(rec model.TransactionRecord) error
}

// ITransactionRecorder persists structured transaction records for lookup
// and webhook reconciliation. Record is append-only from the pipeline's
// point of view; UpdateStatus only mirrors the processor's asynchronous
// verdict onto an existing record.
type ITransactionRecorder interface {
	Record(ctx context.Context, rec *model.TransactionRecord) error
	FindByChargeID(ctx context.Context, chargeID string) (*model.TransactionRecord, error)
	UpdateStatus(ctx context.Context, chargeID string, status model.ChargeStatus) error
}
