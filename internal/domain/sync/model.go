package sync

import (
	"time"

	"github.com/google/uuid"
)

// EntityType tags one syncable record kind in wire payloads and the registry.
type EntityType string

const (
	TypeJournals   EntityType = "journals"
	TypeCategories EntityType = "categories"
	TypeTags       EntityType = "tags"
)

type SessionStatus string

const (
	SessionStarted   SessionStatus = "started"
	SessionCompleted SessionStatus = "completed"
	SessionFailed    SessionStatus = "failed"
)

// Session is the audit unit of one pull or push attempt. It is terminated by
// Complete or Fail exactly once and never reopened.
type Session struct {
	ID            uuid.UUID     `json:"id"`
	UserID        int           `json:"user_id"`
	DeviceID      string        `json:"device_id"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
	Status        SessionStatus `json:"status"`
	ItemsSent     int           `json:"items_sent"`
	ItemsReceived int           `json:"items_received"`
	ConflictCount int           `json:"conflict_count"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

type Resolution string

const (
	ResolutionClient Resolution = "client"
	ResolutionServer Resolution = "server"
	ResolutionMerged Resolution = "merged"
)

func (r Resolution) Valid() bool {
	switch r {
	case ResolutionClient, ResolutionServer, ResolutionMerged:
		return true
	}
	return false
}

// Conflict records one rejected push write: the client claimed a version the
// server had already moved past. Conflicts belong to the session that raised
// them and are kept forever as an audit trail.
type Conflict struct {
	ID            uuid.UUID  `json:"id"`
	SessionID     uuid.UUID  `json:"session_id"`
	EntityType    EntityType `json:"entity_type"`
	ObjectID      uuid.UUID  `json:"object_id"`
	ClientVersion int64      `json:"client_version"`
	ServerVersion int64      `json:"server_version"`
	Resolved      bool       `json:"resolved"`
	Resolution    Resolution `json:"resolution,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// Record is the wire form of one syncable record. Payload carries the
// type-specific fields (title/content, name/description, name/color);
// everything else is sync metadata shared by all types.
type Record struct {
	ID           uuid.UUID      `json:"id"`
	SyncVersion  int64          `json:"sync_version"`
	IsDeleted    bool           `json:"is_deleted"`
	IsSynced     bool           `json:"is_synced"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	LastSyncTime *time.Time     `json:"last_sync_time,omitempty"`
	Payload      map[string]any `json:"payload"`
}

// RecordUpdate is one client-side record in a push batch. SyncVersion is the
// version the device last saw for this record.
type RecordUpdate struct {
	ID          uuid.UUID      `json:"id,omitempty"`
	SyncVersion int64          `json:"sync_version"`
	IsDeleted   bool           `json:"is_deleted"`
	Payload     map[string]any `json:"payload"`
}
