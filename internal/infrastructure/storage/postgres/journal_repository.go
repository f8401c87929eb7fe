package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"journalsync/internal/domain/journal"
)

// JournalRepository is the CRUD persistence for entries, categories and
// tags. Reads exclude soft-deleted rows; Save persists the entity's current
// state verbatim, sync metadata included, so the domain layer owns the
// version bookkeeping.
type JournalRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewJournalRepository(db *Storage, log *slog.Logger) *JournalRepository {
	return &JournalRepository{
		db:  db,
		log: log,
	}
}

const entryColumns = `id, user_id, title, content, sync_version, is_deleted, is_synced, created_at, updated_at, last_sync_time`

func (r *JournalRepository) CreateEntry(ctx context.Context, e *journal.Entry) error {
	_, err := r.db.db(ctx).Exec(ctx,
		`INSERT INTO journal_entries (id, user_id, title, content, sync_version, is_deleted, is_synced, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.UserID, e.Title, e.Content, e.SyncVersion, e.IsDeleted, e.IsSynced, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *JournalRepository) GetEntry(ctx context.Context, userID int, id uuid.UUID) (*journal.Entry, error) {
	row := r.db.db(ctx).QueryRow(ctx,
		`SELECT `+entryColumns+` FROM journal_entries
         WHERE user_id = $1 AND id = $2 AND is_deleted = FALSE`,
		userID, id)
	return scanEntry(row)
}

func (r *JournalRepository) ListEntries(ctx context.Context, userID int, includeDeleted bool) ([]journal.Entry, error) {
	rows, err := r.db.db(ctx).Query(ctx,
		`SELECT `+entryColumns+` FROM journal_entries
         WHERE user_id = $1 AND (is_deleted = FALSE OR $2)
         ORDER BY updated_at DESC`,
		userID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []journal.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *JournalRepository) SaveEntry(ctx context.Context, e *journal.Entry) error {
	tag, err := r.db.db(ctx).Exec(ctx,
		`UPDATE journal_entries
         SET title = $3, content = $4, sync_version = $5, is_deleted = $6, is_synced = $7,
             updated_at = $8, last_sync_time = $9
         WHERE user_id = $1 AND id = $2`,
		e.UserID, e.ID, e.Title, e.Content, e.SyncVersion, e.IsDeleted, e.IsSynced, e.UpdatedAt, e.LastSyncTime)
	if err != nil {
		return fmt.Errorf("save entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (*journal.Entry, error) {
	var e journal.Entry
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.SyncVersion,
		&e.IsDeleted, &e.IsSynced, &e.CreatedAt, &e.UpdatedAt, &e.LastSyncTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan entry: %w", err)
	}
	return &e, nil
}

const categoryColumns = `id, user_id, name, description, sync_version, is_deleted, is_synced, created_at, updated_at, last_sync_time`

func (r *JournalRepository) CreateCategory(ctx context.Context, c *journal.Category) error {
	_, err := r.db.db(ctx).Exec(ctx,
		`INSERT INTO categories (id, user_id, name, description, sync_version, is_deleted, is_synced, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.UserID, c.Name, c.Description, c.SyncVersion, c.IsDeleted, c.IsSynced, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *JournalRepository) GetCategory(ctx context.Context, userID int, id uuid.UUID) (*journal.Category, error) {
	row := r.db.db(ctx).QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories
         WHERE user_id = $1 AND id = $2 AND is_deleted = FALSE`,
		userID, id)
	return scanCategory(row)
}

func (r *JournalRepository) ListCategories(ctx context.Context, userID int, includeDeleted bool) ([]journal.Category, error) {
	rows, err := r.db.db(ctx).Query(ctx,
		`SELECT `+categoryColumns+` FROM categories
         WHERE user_id = $1 AND (is_deleted = FALSE OR $2)
         ORDER BY name`,
		userID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []journal.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *JournalRepository) SaveCategory(ctx context.Context, c *journal.Category) error {
	tag, err := r.db.db(ctx).Exec(ctx,
		`UPDATE categories
         SET name = $3, description = $4, sync_version = $5, is_deleted = $6, is_synced = $7,
             updated_at = $8, last_sync_time = $9
         WHERE user_id = $1 AND id = $2`,
		c.UserID, c.ID, c.Name, c.Description, c.SyncVersion, c.IsDeleted, c.IsSynced, c.UpdatedAt, c.LastSyncTime)
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*journal.Category, error) {
	var c journal.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.SyncVersion,
		&c.IsDeleted, &c.IsSynced, &c.CreatedAt, &c.UpdatedAt, &c.LastSyncTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

const tagColumns = `id, user_id, name, color, sync_version, is_deleted, is_synced, created_at, updated_at, last_sync_time`

func (r *JournalRepository) CreateTag(ctx context.Context, t *journal.Tag) error {
	_, err := r.db.db(ctx).Exec(ctx,
		`INSERT INTO tags (id, user_id, name, color, sync_version, is_deleted, is_synced, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.UserID, t.Name, t.Color, t.SyncVersion, t.IsDeleted, t.IsSynced, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func (r *JournalRepository) GetTag(ctx context.Context, userID int, id uuid.UUID) (*journal.Tag, error) {
	row := r.db.db(ctx).QueryRow(ctx,
		`SELECT `+tagColumns+` FROM tags
         WHERE user_id = $1 AND id = $2 AND is_deleted = FALSE`,
		userID, id)
	return scanTag(row)
}

func (r *JournalRepository) ListTags(ctx context.Context, userID int, includeDeleted bool) ([]journal.Tag, error) {
	rows, err := r.db.db(ctx).Query(ctx,
		`SELECT `+tagColumns+` FROM tags
         WHERE user_id = $1 AND (is_deleted = FALSE OR $2)
         ORDER BY name`,
		userID, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var out []journal.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *JournalRepository) SaveTag(ctx context.Context, t *journal.Tag) error {
	tag, err := r.db.db(ctx).Exec(ctx,
		`UPDATE tags
         SET name = $3, color = $4, sync_version = $5, is_deleted = $6, is_synced = $7,
             updated_at = $8, last_sync_time = $9
         WHERE user_id = $1 AND id = $2`,
		t.UserID, t.ID, t.Name, t.Color, t.SyncVersion, t.IsDeleted, t.IsSynced, t.UpdatedAt, t.LastSyncTime)
	if err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func scanTag(row pgx.Row) (*journal.Tag, error) {
	var t journal.Tag
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.SyncVersion,
		&t.IsDeleted, &t.IsSynced, &t.CreatedAt, &t.UpdatedAt, &t.LastSyncTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, journal.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tag: %w", err)
	}
	return &t, nil
}

func (r *JournalRepository) TouchUserActivity(ctx context.Context, userID int) error {
	_, err := r.db.db(ctx).Exec(ctx,
		`UPDATE users SET last_activity = NOW() WHERE id = $1`, userID)
	return err
}
