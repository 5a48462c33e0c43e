package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"github.com/Mgobeaalcoba/payflow-service/internal/model"
	"github.com/Mgobeaalcoba/payflow-service/internal/ports"
)

const (
	recordBucket = "transaction_records"
	chargeBucket = "charge_index"
)

// BoltRecorder keeps transaction records in an embedded BoltDB file, for
// deployments where running a Postgres instance is not worth it. All data
// lives in a single file next to the binary.
type BoltRecorder struct {
	db *bolt.DB
}

// NewBoltRecorder opens (or creates) the database file and ensures both
// buckets exist.
func NewBoltRecorder(path string) (*BoltRecorder, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(recordBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(chargeBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltRecorder{db: db}, nil
}

func (r *BoltRecorder) Close() error {
	return r.db.Close()
}

func (r *BoltRecorder) Record(ctx context.Context, rec *model.TransactionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return &ports.IOError{Sink: "transaction store", Err: err}
	}

	err = r.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(recordBucket)).Put([]byte(rec.ID), data); err != nil {
			return err
		}
		if rec.ChargeID == "" {
			return nil
		}
		// Secondary index: charge id -> record id.
		return tx.Bucket([]byte(chargeBucket)).Put([]byte(rec.ChargeID), []byte(rec.ID))
	})
	if err != nil {
		return &ports.IOError{Sink: "transaction store", Err: err}
	}

	return nil
}

func (r *BoltRecorder) FindByChargeID(ctx context.Context, chargeID string) (*model.TransactionRecord, error) {
	var rec *model.TransactionRecord

	err := r.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(chargeBucket)).Get([]byte(chargeID))
		if id == nil {
			return nil
		}
		data := tx.Bucket([]byte(recordBucket)).Get(id)
		if data == nil {
			return fmt.Errorf("dangling charge index entry for %s", chargeID)
		}
		rec = &model.TransactionRecord{}
		return json.Unmarshal(data, rec)
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (r *BoltRecorder) UpdateStatus(ctx context.Context, chargeID string, status model.ChargeStatus) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		id := tx.Bucket([]byte(chargeBucket)).Get([]byte(chargeID))
		if id == nil {
			return fmt.Errorf("no transaction record for charge %s", chargeID)
		}

		records := tx.Bucket([]byte(recordBucket))
		data := records.Get(id)
		if data == nil {
			return fmt.Errorf("dangling charge index entry for %s", chargeID)
		}

		var rec model.TransactionRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		if rec.Status == status {
			// Identical status, skip the write.
			return nil
		}
		rec.Status = status

		updated, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		return records.Put(id, updated)
	})
	if err != nil {
		return err
	}

	return nil
}
