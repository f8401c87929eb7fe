package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	CreateEntry(ctx context.Context, userID int, title, content string) (*Entry, error)
	GetEntry(ctx context.Context, userID int, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, userID int, includeDeleted bool) ([]Entry, error)
	UpdateEntry(ctx context.Context, userID int, id uuid.UUID, title, content string) (*Entry, error)
	DeleteEntry(ctx context.Context, userID int, id uuid.UUID) error

	CreateCategory(ctx context.Context, userID int, name, description string) (*Category, error)
	GetCategory(ctx context.Context, userID int, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, userID int, includeDeleted bool) ([]Category, error)
	UpdateCategory(ctx context.Context, userID int, id uuid.UUID, name, description string) (*Category, error)
	DeleteCategory(ctx context.Context, userID int, id uuid.UUID) error

	CreateTag(ctx context.Context, userID int, name, color string) (*Tag, error)
	GetTag(ctx context.Context, userID int, id uuid.UUID) (*Tag, error)
	ListTags(ctx context.Context, userID int, includeDeleted bool) ([]Tag, error)
	UpdateTag(ctx context.Context, userID int, id uuid.UUID, name, color string) (*Tag, error)
	DeleteTag(ctx context.Context, userID int, id uuid.UUID) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "journal_service"),
		now:  time.Now,
	}
}

func (s *Service) CreateEntry(ctx context.Context, userID int, title, content string) (*Entry, error) {
	if err := ValidateEntry(title); err != nil {
		return nil, err
	}
	e := &Entry{
		SyncMeta: NewSyncMeta(s.now()),
		UserID:   userID,
		Title:    title,
		Content:  content,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	s.touch(ctx, userID)
	return e, nil
}

func (s *Service) GetEntry(ctx context.Context, userID int, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, userID, id)
}

func (s *Service) ListEntries(ctx context.Context, userID int, includeDeleted bool) ([]Entry, error) {
	return s.repo.ListEntries(ctx, userID, includeDeleted)
}

func (s *Service) UpdateEntry(ctx context.Context, userID int, id uuid.UUID, title, content string) (*Entry, error) {
	if err := ValidateEntry(title); err != nil {
		return nil, err
	}
	e, err := s.repo.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	e.Title = title
	e.Content = content
	e.Changed(s.now())
	if err := s.repo.SaveEntry(ctx, e); err != nil {
		return nil, fmt.Errorf("save entry: %w", err)
	}
	s.touch(ctx, userID)
	return e, nil
}

func (s *Service) DeleteEntry(ctx context.Context, userID int, id uuid.UUID) error {
	e, err := s.repo.GetEntry(ctx, userID, id)
	if err != nil {
		return err
	}
	e.SoftDelete(s.now())
	if err := s.repo.SaveEntry(ctx, e); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.touch(ctx, userID)
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, userID int, name, description string) (*Category, error) {
	if err := ValidateCategory(name); err != nil {
		return nil, err
	}
	c := &Category{
		SyncMeta:    NewSyncMeta(s.now()),
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.touch(ctx, userID)
	return c, nil
}

func (s *Service) GetCategory(ctx context.Context, userID int, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, userID, id)
}

func (s *Service) ListCategories(ctx context.Context, userID int, includeDeleted bool) ([]Category, error) {
	return s.repo.ListCategories(ctx, userID, includeDeleted)
}

func (s *Service) UpdateCategory(ctx context.Context, userID int, id uuid.UUID, name, description string) (*Category, error) {
	if err := ValidateCategory(name); err != nil {
		return nil, err
	}
	c, err := s.repo.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.Description = description
	c.Changed(s.now())
	if err := s.repo.SaveCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("save category: %w", err)
	}
	s.touch(ctx, userID)
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, userID int, id uuid.UUID) error {
	c, err := s.repo.GetCategory(ctx, userID, id)
	if err != nil {
		return err
	}
	c.SoftDelete(s.now())
	if err := s.repo.SaveCategory(ctx, c); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.touch(ctx, userID)
	return nil
}

func (s *Service) CreateTag(ctx context.Context, userID int, name, color string) (*Tag, error) {
	if color == "" {
		color = DefaultTagColor
	}
	if err := ValidateTag(name, color); err != nil {
		return nil, err
	}
	t := &Tag{
		SyncMeta: NewSyncMeta(s.now()),
		UserID:   userID,
		Name:     name,
		Color:    color,
	}
	if err := s.repo.CreateTag(ctx, t); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	s.touch(ctx, userID)
	return t, nil
}

func (s *Service) GetTag(ctx context.Context, userID int, id uuid.UUID) (*Tag, error) {
	return s.repo.GetTag(ctx, userID, id)
}

func (s *Service) ListTags(ctx context.Context, userID int, includeDeleted bool) ([]Tag, error) {
	return s.repo.ListTags(ctx, userID, includeDeleted)
}

func (s *Service) UpdateTag(ctx context.Context, userID int, id uuid.UUID, name, color string) (*Tag, error) {
	if color == "" {
		color = DefaultTagColor
	}
	if err := ValidateTag(name, color); err != nil {
		return nil, err
	}
	t, err := s.repo.GetTag(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	t.Name = name
	t.Color = color
	t.Changed(s.now())
	if err := s.repo.SaveTag(ctx, t); err != nil {
		return nil, fmt.Errorf("save tag: %w", err)
	}
	s.touch(ctx, userID)
	return t, nil
}

func (s *Service) DeleteTag(ctx context.Context, userID int, id uuid.UUID) error {
	t, err := s.repo.GetTag(ctx, userID, id)
	if err != nil {
		return err
	}
	t.SoftDelete(s.now())
	if err := s.repo.SaveTag(ctx, t); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	s.touch(ctx, userID)
	return nil
}

// touch is best effort: activity tracking never fails a journal operation.
func (s *Service) touch(ctx context.Context, userID int) {
	if err := s.repo.TouchUserActivity(ctx, userID); err != nil {
		s.log.Warn("touch user activity", "user_id", userID, "error", err)
	}
}
