package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
)

// Combines all needed interfaces
type Queryable interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

type DB interface {
	Queryable
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresRecorder persists transaction records in a Postgres table.
type PostgresRecorder struct {
	db DB
}

func NewPostgresRecorder(pool *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{db: pool}
}

func (r *PostgresRecorder) Record(ctx context.Context, rec *model.TransactionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	sql := `
        INSERT INTO transaction_records
            (id, customer_name, amount, currency, charge_id, tx_status, channel, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, sql,
		rec.ID,
		rec.CustomerName,
		rec.Amount,
		rec.Currency,
		rec.ChargeID,
		string(rec.Status),
		string(rec.Channel),
		rec.CreatedAt,
	)
	if err != nil {
		return &ports.IOError{Sink: "transaction store", Err: fmt.Errorf("error inserting transaction record: %w", err)}
	}

	return nil
}

func (r *PostgresRecorder) FindByChargeID(ctx context.Context, chargeID string) (*model.TransactionRecord, error) {
	sql := `
        SELECT id, customer_name, amount, currency, charge_id, tx_status, channel, created_at
        FROM transaction_records
        WHERE charge_id = $1`

	var rec model.TransactionRecord
	var status, channel string
	err := r.db.QueryRow(ctx, sql, chargeID).Scan(
		&rec.ID,
		&rec.CustomerName,
		&rec.Amount,
		&rec.Currency,
		&rec.ChargeID,
		&status,
		&channel,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying transaction record: %w", err)
	}

	rec.Status = model.ChargeStatus(status)
	rec.Channel = model.ChannelKind(channel)
	return &rec, nil
}

func (r *PostgresRecorder) UpdateStatus(ctx context.Context, chargeID string, status model.ChargeStatus) error {
	sql := `
        UPDATE transaction_records
        SET tx_status = $1
        WHERE charge_id = $2`

	tag, err := r.db.Exec(ctx, sql, string(status), chargeID)
	if err != nil {
		return &ports.IOError{Sink: "transaction store", Err: fmt.Errorf("error updating transaction status: %w", err)}
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no transaction record for charge %s", chargeID)
	}

	return nil
}
