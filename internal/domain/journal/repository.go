package journal

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for the journal CRUD surface. Get
// methods never return soft-deleted rows; tombstones travel through sync
// only. Save persists the entity's current field values, sync metadata
// included.
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, userID int, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, userID int, includeDeleted bool) ([]Entry, error)
	SaveEntry(ctx context.Context, e *Entry) error

	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, userID int, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, userID int, includeDeleted bool) ([]Category, error)
	SaveCategory(ctx context.Context, c *Category) error

	CreateTag(ctx context.Context, t *Tag) error
	GetTag(ctx context.Context, userID int, id uuid.UUID) (*Tag, error)
	ListTags(ctx context.Context, userID int, includeDeleted bool) ([]Tag, error)
	SaveTag(ctx context.Context, t *Tag) error

	// TouchUserActivity stamps the user's last activity time.
	TouchUserActivity(ctx context.Context, userID int) error
}
