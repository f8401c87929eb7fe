package sync

import "errors"

var (
	ErrMissingDevice     = errors.New("device id is required")
	ErrEmptyUpdates      = errors.New("push batch is empty")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrRecordNotFound    = errors.New("record not found")
	ErrSessionNotFound   = errors.New("sync session not found")
	ErrConflictNotFound  = errors.New("conflict not found")
	ErrConflictResolved  = errors.New("conflict already resolved")
	ErrInvalidResolution = errors.New("invalid resolution")
	ErrMissingPayload    = errors.New("resolution payload is required")
	ErrInvalidPayload    = errors.New("invalid resolution payload")
)
