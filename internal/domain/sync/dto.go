package sync

import "github.com/google/uuid"

type ResultStatus string

const (
	ResultCreated ResultStatus = "created"
	ResultUpdated ResultStatus = "updated"
	ResultError   ResultStatus = "error"
)

// RecordResult is the per-record outcome of a push. Conflicts are reported
// separately, never as a RecordResult.
type RecordResult struct {
	ID      uuid.UUID         `json:"id"`
	Status  ResultStatus      `json:"status"`
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
}

type PullResult struct {
	SessionID uuid.UUID               `json:"session_id"`
	Records   map[EntityType][]Record `json:"records"`
}

type PushResult struct {
	SessionID uuid.UUID                     `json:"session_id"`
	Results   map[EntityType][]RecordResult `json:"results"`
	Conflicts []Conflict                    `json:"conflicts"`
}

type ResolveResult struct {
	Conflict    Conflict `json:"conflict"`
	SyncVersion int64    `json:"sync_version"`
}
