package storage

import "errors"

// ErrNotFound is returned by GetDocument when no document is stored under the key.
var ErrNotFound = errors.New("document not found")

// ErrIndexOutOfRange is returned when a workout index does not exist for a date.
var ErrIndexOutOfRange = errors.New("workout index out of range")

// Provider is a key-value store of whole JSON documents.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	GetDocument(key string) ([]byte, error)
	PutDocument(key string, value []byte) error

	// Metadata
	GetConfigPath() string
}
