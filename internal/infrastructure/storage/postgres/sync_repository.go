package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"journalsync/internal/domain/sync"
)

type SyncSessionRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSyncSessionRepository(db *Storage, log *slog.Logger) *SyncSessionRepository {
	return &SyncSessionRepository{
		db:  db,
		log: log,
	}
}

func (r *SyncSessionRepository) Create(ctx context.Context, s *sync.Session) error {
	_, err := r.db.db(ctx).Exec(ctx,
		`INSERT INTO sync_sessions (id, user_id, device_id, started_at, status)
         VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, s.DeviceID, s.StartedAt, s.Status)
	if err != nil {
		return fmt.Errorf("insert sync session: %w", err)
	}
	return nil
}

// Complete only moves started sessions; a session already terminal stays
// untouched.
func (r *SyncSessionRepository) Complete(ctx context.Context, id uuid.UUID, itemsSent, itemsReceived, conflictCount int) error {
	tag, err := r.db.db(ctx).Exec(ctx,
		`UPDATE sync_sessions
         SET status = $2, completed_at = NOW(), items_sent = $3, items_received = $4, conflict_count = $5
         WHERE id = $1 AND status = $6`,
		id, sync.SessionCompleted, itemsSent, itemsReceived, conflictCount, sync.SessionStarted)
	if err != nil {
		return fmt.Errorf("complete sync session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sync.ErrSessionNotFound
	}
	return nil
}

func (r *SyncSessionRepository) Fail(ctx context.Context, id uuid.UUID, message string) error {
	tag, err := r.db.db(ctx).Exec(ctx,
		`UPDATE sync_sessions
         SET status = $2, completed_at = NOW(), error_message = $3
         WHERE id = $1 AND status = $4`,
		id, sync.SessionFailed, message, sync.SessionStarted)
	if err != nil {
		return fmt.Errorf("fail sync session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sync.ErrSessionNotFound
	}
	return nil
}

func (r *SyncSessionRepository) ListByUser(ctx context.Context, userID int) ([]sync.Session, error) {
	rows, err := r.db.db(ctx).Query(ctx,
		`SELECT id, user_id, device_id, started_at, completed_at, status,
                items_sent, items_received, conflict_count, COALESCE(error_message, '')
         FROM sync_sessions
         WHERE user_id = $1
         ORDER BY started_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list sync sessions: %w", err)
	}
	defer rows.Close()

	var out []sync.Session
	for rows.Next() {
		var s sync.Session
		err := rows.Scan(&s.ID, &s.UserID, &s.DeviceID, &s.StartedAt, &s.CompletedAt, &s.Status,
			&s.ItemsSent, &s.ItemsReceived, &s.ConflictCount, &s.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan sync session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type SyncConflictRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewSyncConflictRepository(db *Storage, log *slog.Logger) *SyncConflictRepository {
	return &SyncConflictRepository{
		db:  db,
		log: log,
	}
}

const conflictColumns = `c.id, c.session_id, c.entity_type, c.object_id, c.client_version, c.server_version,
       c.resolved, COALESCE(c.resolution, ''), c.created_at, c.resolved_at`

func (r *SyncConflictRepository) Create(ctx context.Context, c *sync.Conflict) error {
	_, err := r.db.db(ctx).Exec(ctx,
		`INSERT INTO sync_conflicts (id, session_id, entity_type, object_id, client_version, server_version, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.SessionID, c.EntityType, c.ObjectID, c.ClientVersion, c.ServerVersion, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert conflict: %w", err)
	}
	return nil
}

// GetForUser scopes the lookup through the owning session, so one user can
// never read or resolve another user's conflicts.
func (r *SyncConflictRepository) GetForUser(ctx context.Context, userID int, id uuid.UUID) (*sync.Conflict, error) {
	row := r.db.db(ctx).QueryRow(ctx,
		`SELECT `+conflictColumns+`
         FROM sync_conflicts c
         JOIN sync_sessions s ON s.id = c.session_id
         WHERE c.id = $1 AND s.user_id = $2`,
		id, userID)

	c, err := scanConflict(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sync.ErrConflictNotFound
	}
	return c, err
}

func (r *SyncConflictRepository) ListByUser(ctx context.Context, userID int, unresolvedOnly bool) ([]sync.Conflict, error) {
	rows, err := r.db.db(ctx).Query(ctx,
		`SELECT `+conflictColumns+`
         FROM sync_conflicts c
         JOIN sync_sessions s ON s.id = c.session_id
         WHERE s.user_id = $1 AND (c.resolved = FALSE OR NOT $2)
         ORDER BY c.created_at DESC`,
		userID, unresolvedOnly)
	if err != nil {
		return nil, fmt.Errorf("list conflicts: %w", err)
	}
	defer rows.Close()

	var out []sync.Conflict
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// MarkResolved flips an unresolved conflict exactly once; a second attempt
// finds no matching row.
func (r *SyncConflictRepository) MarkResolved(ctx context.Context, id uuid.UUID, resolution sync.Resolution, at time.Time) error {
	tag, err := r.db.db(ctx).Exec(ctx,
		`UPDATE sync_conflicts
         SET resolved = TRUE, resolution = $2, resolved_at = $3
         WHERE id = $1 AND resolved = FALSE`,
		id, resolution, at)
	if err != nil {
		return fmt.Errorf("mark conflict resolved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sync.ErrConflictResolved
	}
	return nil
}

func scanConflict(row pgx.Row) (*sync.Conflict, error) {
	var c sync.Conflict
	err := row.Scan(&c.ID, &c.SessionID, &c.EntityType, &c.ObjectID, &c.ClientVersion, &c.ServerVersion,
		&c.Resolved, &c.Resolution, &c.CreatedAt, &c.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan conflict: %w", err)
	}
	return &c, nil
}
