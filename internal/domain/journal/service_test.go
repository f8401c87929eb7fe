package journal

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateEntry(ctx context.Context, e *Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockRepository) GetEntry(ctx context.Context, userID int, id uuid.UUID) (*Entry, error) {
	args := m.Called(ctx, userID, id)
	if e, ok := args.Get(0).(*Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListEntries(ctx context.Context, userID int, includeDeleted bool) ([]Entry, error) {
	args := m.Called(ctx, userID, includeDeleted)
	if es, ok := args.Get(0).([]Entry); ok {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SaveEntry(ctx context.Context, e *Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockRepository) CreateCategory(ctx context.Context, c *Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) GetCategory(ctx context.Context, userID int, id uuid.UUID) (*Category, error) {
	args := m.Called(ctx, userID, id)
	if c, ok := args.Get(0).(*Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListCategories(ctx context.Context, userID int, includeDeleted bool) ([]Category, error) {
	args := m.Called(ctx, userID, includeDeleted)
	if cs, ok := args.Get(0).([]Category); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SaveCategory(ctx context.Context, c *Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) CreateTag(ctx context.Context, t *Tag) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockRepository) GetTag(ctx context.Context, userID int, id uuid.UUID) (*Tag, error) {
	args := m.Called(ctx, userID, id)
	if tg, ok := args.Get(0).(*Tag); ok {
		return tg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListTags(ctx context.Context, userID int, includeDeleted bool) ([]Tag, error) {
	args := m.Called(ctx, userID, includeDeleted)
	if ts, ok := args.Get(0).([]Tag); ok {
		return ts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SaveTag(ctx context.Context, t *Tag) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockRepository) TouchUserActivity(ctx context.Context, userID int) error {
	return m.Called(ctx, userID).Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateEntry(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateEntry", mock.Anything, mock.AnythingOfType("*journal.Entry")).Return(nil)
	repo.On("TouchUserActivity", mock.Anything, 1).Return(nil)

	svc := newTestService(repo)
	e, err := svc.CreateEntry(context.Background(), 1, "first entry", "hello")
	require.NoError(t, err)

	assert.NotZero(t, e.ID)
	assert.Equal(t, int64(1), e.SyncVersion)
	assert.False(t, e.IsSynced)
	assert.Equal(t, "first entry", e.Title)
	repo.AssertExpectations(t)
}

func TestCreateEntryInvalidTitle(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	_, err := svc.CreateEntry(context.Background(), 1, "", "body")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, requiredMsg, verr.FieldErrors()["title"])
	repo.AssertNotCalled(t, "CreateEntry", mock.Anything, mock.Anything)
}

func TestUpdateEntryMarksChanged(t *testing.T) {
	stored := &Entry{SyncMeta: NewSyncMeta(time.Now()), UserID: 1, Title: "old", Content: "old body"}
	stored.Synced(time.Now())

	repo := new(MockRepository)
	repo.On("GetEntry", mock.Anything, 1, stored.ID).Return(stored, nil)
	repo.On("SaveEntry", mock.Anything, stored).Return(nil)
	repo.On("TouchUserActivity", mock.Anything, 1).Return(nil)

	svc := newTestService(repo)
	e, err := svc.UpdateEntry(context.Background(), 1, stored.ID, "new", "new body")
	require.NoError(t, err)

	assert.Equal(t, int64(2), e.SyncVersion)
	assert.False(t, e.IsSynced)
	assert.Equal(t, "new", e.Title)
	repo.AssertExpectations(t)
}

func TestUpdateEntryNotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetEntry", mock.Anything, 1, mock.Anything).Return(nil, ErrNotFound)

	svc := newTestService(repo)
	_, err := svc.UpdateEntry(context.Background(), 1, uuid.New(), "x", "y")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteEntrySoftDeletes(t *testing.T) {
	stored := &Entry{SyncMeta: NewSyncMeta(time.Now()), UserID: 1, Title: "doomed"}

	repo := new(MockRepository)
	repo.On("GetEntry", mock.Anything, 1, stored.ID).Return(stored, nil)
	repo.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e *Entry) bool {
		return e.IsDeleted && e.SyncVersion == 1 && !e.IsSynced
	})).Return(nil)
	repo.On("TouchUserActivity", mock.Anything, 1).Return(nil)

	svc := newTestService(repo)
	require.NoError(t, svc.DeleteEntry(context.Background(), 1, stored.ID))
	repo.AssertExpectations(t)
}

func TestCreateTagDefaultsColor(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateTag", mock.Anything, mock.MatchedBy(func(tg *Tag) bool {
		return tg.Color == DefaultTagColor
	})).Return(nil)
	repo.On("TouchUserActivity", mock.Anything, 1).Return(nil)

	svc := newTestService(repo)
	tg, err := svc.CreateTag(context.Background(), 1, "travel", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTagColor, tg.Color)
	repo.AssertExpectations(t)
}

func TestUpdateCategory(t *testing.T) {
	stored := &Category{SyncMeta: NewSyncMeta(time.Now()), UserID: 1, Name: "misc"}

	repo := new(MockRepository)
	repo.On("GetCategory", mock.Anything, 1, stored.ID).Return(stored, nil)
	repo.On("SaveCategory", mock.Anything, stored).Return(nil)
	repo.On("TouchUserActivity", mock.Anything, 1).Return(nil)

	svc := newTestService(repo)
	c, err := svc.UpdateCategory(context.Background(), 1, stored.ID, "work", "office notes")
	require.NoError(t, err)
	assert.Equal(t, "work", c.Name)
	assert.Equal(t, int64(2), c.SyncVersion)
}

func TestTouchFailureDoesNotFailOperation(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateEntry", mock.Anything, mock.Anything).Return(nil)
	repo.On("TouchUserActivity", mock.Anything, 1).Return(assert.AnError)

	svc := newTestService(repo)
	_, err := svc.CreateEntry(context.Background(), 1, "resilient", "")
	assert.NoError(t, err)
}
