package domain

import "errors"

var (
	// ErrRecordNotFound is returned by repositories when no row exists for the key
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnknownKind is returned for an entity collection name that does not exist
	ErrUnknownKind = errors.New("invalid entity kind")

	// ErrUnknownField is returned when updating a field an entity does not have
	ErrUnknownField = errors.New("invalid entity field")

	// ErrUnsupportedCurrency is returned when selecting a currency outside the supported set
	ErrUnsupportedCurrency = errors.New("invalid currency: not supported")

	// ErrInvalidBackup is returned when a backup document is structurally invalid
	ErrInvalidBackup = errors.New("invalid backup document")
)
