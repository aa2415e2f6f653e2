package persist

import "fmt"

// ConnectionError means the backing database could not be opened, or the
// named store could not be created during a schema upgrade.
type ConnectionError struct {
	Database string
	Store    string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("persist: cannot open store %s/%s: %v", e.Database, e.Store, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TransactionError means the engine aborted or failed to complete a
// transaction as a whole.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("persist: transaction failed: %v", e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// WriteError means a single record could not be written. Key identifies
// the offending document.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("persist: cannot write record %q: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// DeleteError means a single record could not be deleted. Key identifies
// the offending document.
type DeleteError struct {
	Key string
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("persist: cannot delete record %q: %v", e.Key, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
