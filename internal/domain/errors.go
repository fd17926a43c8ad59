package domain

import "errors"

var (
	// ErrStoreUnavailable means the record store has no live connection.
	ErrStoreUnavailable = errors.New("record store not connected")
	ErrNotFound         = errors.New("resource not found")
)

// StoreUnavailableMessage is the marker the API sends with a 503 when the store is down.
const StoreUnavailableMessage = "Database not connected"
