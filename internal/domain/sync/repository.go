package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store gives the sync engine access to one syncable table. Sync-originated
// writes must not trigger the user-edit version bump: every write here marks
// the record synced and stamps last_sync_time instead.
type Store interface {
	// ChangedSince returns the user's records with updated_at strictly after
	// since, soft-deleted ones included so deletions propagate.
	ChangedSince(ctx context.Context, userID int, since time.Time) ([]Record, error)

	Get(ctx context.Context, userID int, id uuid.UUID) (*Record, error)

	// GetForUpdate additionally locks the row for the rest of the open
	// transaction, so the version compare-and-write sequence cannot race a
	// concurrent push for the same record.
	GetForUpdate(ctx context.Context, userID int, id uuid.UUID) (*Record, error)

	// CreateSynced inserts a record arriving from a device, already marked
	// synced, at the given version.
	CreateSynced(ctx context.Context, userID int, upd RecordUpdate, version int64) (*Record, error)

	// ApplySynced applies payload fields (nil payload keeps current fields)
	// and, when deleted is non-nil, the deletion flag; sets the exact version
	// and marks the record synced.
	ApplySynced(ctx context.Context, userID int, id uuid.UUID, payload map[string]any, deleted *bool, version int64) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	// Complete transitions a started session to completed with final counters.
	Complete(ctx context.Context, id uuid.UUID, itemsSent, itemsReceived, conflictCount int) error
	// Fail transitions a started session to failed, recording the cause.
	Fail(ctx context.Context, id uuid.UUID, message string) error
	ListByUser(ctx context.Context, userID int) ([]Session, error)
}

type ConflictRepository interface {
	Create(ctx context.Context, c *Conflict) error
	// GetForUser resolves a conflict id scoped to sessions owned by userID.
	GetForUser(ctx context.Context, userID int, id uuid.UUID) (*Conflict, error)
	ListByUser(ctx context.Context, userID int, unresolvedOnly bool) ([]Conflict, error)
	MarkResolved(ctx context.Context, id uuid.UUID, resolution Resolution, at time.Time) error
}

// TxManager runs fn inside one storage transaction. The context passed to fn
// carries the transaction and repository calls made with it join it; nested
// calls open a savepoint, so a failed inner fn rolls back only its own writes.
type TxManager interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
