package journal

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#3498db"

// SyncMeta is the synchronization bookkeeping shared by every syncable
// entity. A fresh record starts at version 1, unsynced.
type SyncMeta struct {
	ID           uuid.UUID  `json:"id"`
	SyncVersion  int64      `json:"sync_version"`
	IsDeleted    bool       `json:"is_deleted"`
	IsSynced     bool       `json:"is_synced"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`
}

func NewSyncMeta(now time.Time) SyncMeta {
	return SyncMeta{
		ID:          uuid.New(),
		SyncVersion: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Changed marks a user edit: the version moves forward and the record needs
// syncing again.
func (m *SyncMeta) Changed(now time.Time) {
	m.SyncVersion++
	m.IsSynced = false
	m.UpdatedAt = now
}

func (m *SyncMeta) Synced(now time.Time) {
	m.IsSynced = true
	m.LastSyncTime = &now
}

// SoftDelete tombstones the record. The row stays so the deletion reaches
// other devices on their next pull. The version does not move: a device
// still holding the live copy must not conflict on the tombstone.
func (m *SyncMeta) SoftDelete(now time.Time) {
	m.IsDeleted = true
	m.IsSynced = false
	m.UpdatedAt = now
}

type Entry struct {
	SyncMeta
	UserID  int    `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Category struct {
	SyncMeta
	UserID      int    `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Tag struct {
	SyncMeta
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}
