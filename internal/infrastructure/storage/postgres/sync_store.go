package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"journalsync/internal/domain/journal"
	"journalsync/internal/domain/sync"
)

// tableSpec describes one syncable table: its name, the payload columns
// carried in sync.Record.Payload, and the pull order. All payload columns
// are text.
type tableSpec struct {
	name     string
	payload  []string
	order    string
	defaults map[string]string
}

var (
	entrySpec = tableSpec{
		name:    "journal_entries",
		payload: []string{"title", "content"},
		order:   "updated_at DESC",
	}
	categorySpec = tableSpec{
		name:    "categories",
		payload: []string{"name", "description"},
		order:   "name",
	}
	tagSpec = tableSpec{
		name:     "tags",
		payload:  []string{"name", "color"},
		order:    "name",
		defaults: map[string]string{"color": journal.DefaultTagColor},
	}
)

// SyncStore implements sync.Store over one syncable table. Every write here
// is sync-originated: it sets the exact version it is told to, marks the row
// synced and stamps last_sync_time, never the user-edit version bump.
type SyncStore struct {
	db   *Storage
	log  *slog.Logger
	spec tableSpec
}

func NewEntrySyncStore(db *Storage, log *slog.Logger) *SyncStore {
	return &SyncStore{db: db, log: log, spec: entrySpec}
}

func NewCategorySyncStore(db *Storage, log *slog.Logger) *SyncStore {
	return &SyncStore{db: db, log: log, spec: categorySpec}
}

func NewTagSyncStore(db *Storage, log *slog.Logger) *SyncStore {
	return &SyncStore{db: db, log: log, spec: tagSpec}
}

func (s *SyncStore) columns() string {
	return "id, sync_version, is_deleted, is_synced, created_at, updated_at, last_sync_time, " +
		strings.Join(s.spec.payload, ", ")
}

func (s *SyncStore) scan(row pgx.Row) (*sync.Record, error) {
	var r sync.Record
	values := make([]string, len(s.spec.payload))

	dest := []any{&r.ID, &r.SyncVersion, &r.IsDeleted, &r.IsSynced, &r.CreatedAt, &r.UpdatedAt, &r.LastSyncTime}
	for i := range values {
		dest = append(dest, &values[i])
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sync.ErrRecordNotFound
		}
		return nil, fmt.Errorf("scan %s: %w", s.spec.name, err)
	}

	r.Payload = make(map[string]any, len(s.spec.payload))
	for i, col := range s.spec.payload {
		r.Payload[col] = values[i]
	}
	return &r, nil
}

func (s *SyncStore) changedSinceQuery() string {
	return `SELECT ` + s.columns() + ` FROM ` + s.spec.name + `
         WHERE user_id = $1 AND updated_at > $2
         ORDER BY ` + s.spec.order
}

func (s *SyncStore) ChangedSince(ctx context.Context, userID int, since time.Time) ([]sync.Record, error) {
	rows, err := s.db.db(ctx).Query(ctx, s.changedSinceQuery(), userID, since)
	if err != nil {
		return nil, fmt.Errorf("changed since %s: %w", s.spec.name, err)
	}
	defer rows.Close()

	var out []sync.Record
	for rows.Next() {
		r, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *SyncStore) Get(ctx context.Context, userID int, id uuid.UUID) (*sync.Record, error) {
	row := s.db.db(ctx).QueryRow(ctx,
		`SELECT `+s.columns()+` FROM `+s.spec.name+`
         WHERE user_id = $1 AND id = $2`,
		userID, id)
	return s.scan(row)
}

func (s *SyncStore) GetForUpdate(ctx context.Context, userID int, id uuid.UUID) (*sync.Record, error) {
	row := s.db.db(ctx).QueryRow(ctx,
		`SELECT `+s.columns()+` FROM `+s.spec.name+`
         WHERE user_id = $1 AND id = $2
         FOR UPDATE`,
		userID, id)
	return s.scan(row)
}

func (s *SyncStore) CreateSynced(ctx context.Context, userID int, upd sync.RecordUpdate, version int64) (*sync.Record, error) {
	cols := []string{"id", "user_id", "sync_version", "is_deleted", "is_synced", "last_sync_time"}
	args := []any{upd.ID, userID, version, upd.IsDeleted, true, time.Now()}
	for _, col := range s.spec.payload {
		cols = append(cols, col)
		args = append(args, s.payloadValue(upd.Payload, col))
	}

	placeholders := make([]string, len(args))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	row := s.db.db(ctx).QueryRow(ctx,
		`INSERT INTO `+s.spec.name+` (`+strings.Join(cols, ", ")+`)
         VALUES (`+strings.Join(placeholders, ", ")+`)
         RETURNING `+s.columns(),
		args...)
	return s.scan(row)
}

func (s *SyncStore) ApplySynced(ctx context.Context, userID int, id uuid.UUID, payload map[string]any, deleted *bool, version int64) error {
	set := []string{"sync_version = $3", "is_synced = TRUE", "last_sync_time = NOW()", "updated_at = NOW()"}
	args := []any{userID, id, version}

	for _, col := range s.spec.payload {
		v, ok := payload[col]
		if !ok || v == nil {
			continue
		}
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if deleted != nil {
		args = append(args, *deleted)
		set = append(set, fmt.Sprintf("is_deleted = $%d", len(args)))
	}

	tag, err := s.db.db(ctx).Exec(ctx,
		`UPDATE `+s.spec.name+` SET `+strings.Join(set, ", ")+`
         WHERE user_id = $1 AND id = $2`,
		args...)
	if err != nil {
		return fmt.Errorf("apply %s: %w", s.spec.name, err)
	}
	if tag.RowsAffected() == 0 {
		return sync.ErrRecordNotFound
	}
	return nil
}

func (s *SyncStore) payloadValue(payload map[string]any, col string) string {
	if v, ok := payload[col].(string); ok && v != "" {
		return v
	}
	return s.spec.defaults[col]
}
