package persist

import (
	bolt "go.etcd.io/bbolt"
)

// TxnRunner opens transactions scoped to one store, ensuring the store
// exists first. Write exclusivity across transactions is bbolt's job, not
// this layer's.
type TxnRunner struct {
	conn     *Connector
	database string
	store    string
}

// NewTxnRunner creates a runner for the given (database, store) pair.
func NewTxnRunner(conn *Connector, database, store string) *TxnRunner {
	return &TxnRunner{conn: conn, database: database, store: store}
}

// Txn is an open transaction together with the store's bucket.
type Txn struct {
	btx    *bolt.Tx
	bucket *bolt.Bucket
	done   bool
}

// Begin opens a transaction on the store. The caller must Commit or
// Rollback it. Errors surface as *ConnectionError.
func (r *TxnRunner) Begin(writable bool) (*Txn, error) {
	db, err := r.conn.EnsureStore(r.database, r.store)
	if err != nil {
		return nil, err
	}

	btx, err := db.Begin(writable)
	if err != nil {
		return nil, &ConnectionError{Database: r.database, Store: r.store, Err: err}
	}

	return &Txn{btx: btx, bucket: btx.Bucket([]byte(r.store))}, nil
}

// Bucket returns the store's bucket for the lifetime of the transaction.
func (t *Txn) Bucket() *bolt.Bucket {
	return t.bucket
}

// Commit completes the transaction. Errors surface as *TransactionError.
func (t *Txn) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.btx.Commit(); err != nil {
		return &TransactionError{Err: err}
	}
	return nil
}

// Rollback abandons the transaction. Safe to call after Commit.
func (t *Txn) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.btx.Rollback()
}
