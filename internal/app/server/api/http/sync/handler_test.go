package sync

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"journalsync/internal/app/server/api/http/middleware/auth"
	"journalsync/internal/domain/sync"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Pull(ctx context.Context, userID int, deviceID string, watermark *time.Time) (*sync.PullResult, error) {
	args := m.Called(ctx, userID, deviceID, watermark)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.PullResult), args.Error(1)
}

func (m *MockService) Push(ctx context.Context, userID int, deviceID string, updates map[sync.EntityType][]sync.RecordUpdate) (*sync.PushResult, error) {
	args := m.Called(ctx, userID, deviceID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.PushResult), args.Error(1)
}

func (m *MockService) Resolve(ctx context.Context, userID int, conflictID uuid.UUID, resolution sync.Resolution, payload map[string]any) (*sync.ResolveResult, error) {
	args := m.Called(ctx, userID, conflictID, resolution, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.ResolveResult), args.Error(1)
}

func (m *MockService) Sessions(ctx context.Context, userID int) ([]sync.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.Session), args.Error(1)
}

func (m *MockService) Conflicts(ctx context.Context, userID int, unresolvedOnly bool) ([]sync.Conflict, error) {
	args := m.Called(ctx, userID, unresolvedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.Conflict), args.Error(1)
}

func newTestHandler(service sync.Servicer) *Handler {
	return NewHandler(service, slog.Default(), nil)
}

func authedCtx(userID int) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func TestHandler_Pull(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	sessionID := uuid.New()
	mockService.On("Pull", mock.Anything, 1, "phone", (*time.Time)(nil)).Return(&sync.PullResult{
		SessionID: sessionID,
		Records: map[sync.EntityType][]sync.Record{
			sync.TypeJournals: {{ID: uuid.New(), SyncVersion: 1}},
		},
	}, nil)

	out, err := handler.pull(authedCtx(1), &pullInput{DeviceID: "phone"})
	require.NoError(t, err)
	assert.Equal(t, sessionID.String(), out.Body.SessionID)
	assert.Len(t, out.Body.Records[sync.TypeJournals], 1)

	mockService.AssertExpectations(t)
}

func TestHandler_Pull_WithWatermark(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	since := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockService.On("Pull", mock.Anything, 1, "phone", &since).Return(&sync.PullResult{SessionID: uuid.New()}, nil)

	_, err := handler.pull(authedCtx(1), &pullInput{DeviceID: "phone", Watermark: "2025-06-01T12:00:00Z"})
	require.NoError(t, err)

	mockService.AssertExpectations(t)
}

func TestHandler_Pull_BadWatermark(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	_, err := handler.pull(authedCtx(1), &pullInput{DeviceID: "phone", Watermark: "yesterday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RFC3339")

	mockService.AssertNotCalled(t, "Pull", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Pull_MissingDevice(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	mockService.On("Pull", mock.Anything, 1, "", (*time.Time)(nil)).Return(nil, sync.ErrMissingDevice)

	_, err := handler.pull(authedCtx(1), &pullInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device id is required")
}

func TestHandler_Pull_Unauthorized(t *testing.T) {
	handler := newTestHandler(new(MockService))

	_, err := handler.pull(context.Background(), &pullInput{DeviceID: "phone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestHandler_Push(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	id := uuid.New()
	updates := map[sync.EntityType][]sync.RecordUpdate{
		sync.TypeJournals: {{ID: id, SyncVersion: 1, Payload: map[string]any{"title": "trip"}}},
	}
	mockService.On("Push", mock.Anything, 1, "phone", updates).Return(&sync.PushResult{
		SessionID: uuid.New(),
		Results: map[sync.EntityType][]sync.RecordResult{
			sync.TypeJournals: {{ID: id, Status: sync.ResultUpdated}},
		},
	}, nil)

	out, err := handler.push(authedCtx(1), &pushInput{Body: PushRequest{DeviceID: "phone", Updates: updates}})
	require.NoError(t, err)
	assert.Len(t, out.Body.Results[sync.TypeJournals], 1)
	assert.NotNil(t, out.Body.Conflicts)
	assert.Empty(t, out.Body.Conflicts)

	mockService.AssertExpectations(t)
}

func TestHandler_Push_EmptyBatch(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	mockService.On("Push", mock.Anything, 1, "phone", mock.Anything).Return(nil, sync.ErrEmptyUpdates)

	_, err := handler.push(authedCtx(1), &pushInput{Body: PushRequest{DeviceID: "phone"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push batch is empty")
}

func TestHandler_Resolve(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	conflictID := uuid.New()
	payload := map[string]any{"title": "mine"}
	mockService.On("Resolve", mock.Anything, 1, conflictID, sync.ResolutionClient, payload).Return(&sync.ResolveResult{
		Conflict:    sync.Conflict{ID: conflictID, Resolved: true, Resolution: sync.ResolutionClient},
		SyncVersion: 7,
	}, nil)

	out, err := handler.resolve(authedCtx(1), &resolveInput{
		ID:   conflictID.String(),
		Body: ResolveRequest{Resolution: "client", ClientData: payload},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.Body.SyncVersion)
	assert.True(t, out.Body.Conflict.Resolved)

	mockService.AssertExpectations(t)
}

func TestHandler_Resolve_ServerIgnoresPayload(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	conflictID := uuid.New()
	mockService.On("Resolve", mock.Anything, 1, conflictID, sync.ResolutionServer, map[string]any(nil)).Return(&sync.ResolveResult{
		Conflict:    sync.Conflict{ID: conflictID, Resolved: true, Resolution: sync.ResolutionServer},
		SyncVersion: 3,
	}, nil)

	_, err := handler.resolve(authedCtx(1), &resolveInput{
		ID:   conflictID.String(),
		Body: ResolveRequest{Resolution: "server", ClientData: map[string]any{"title": "ignored"}},
	})
	require.NoError(t, err)

	mockService.AssertExpectations(t)
}

func TestHandler_Resolve_BadID(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	_, err := handler.resolve(authedCtx(1), &resolveInput{ID: "not-a-uuid", Body: ResolveRequest{Resolution: "server"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid conflict id")
}

func TestHandler_Resolve_AlreadyResolved(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	conflictID := uuid.New()
	mockService.On("Resolve", mock.Anything, 1, conflictID, sync.ResolutionServer, map[string]any(nil)).Return(nil, sync.ErrConflictResolved)

	_, err := handler.resolve(authedCtx(1), &resolveInput{ID: conflictID.String(), Body: ResolveRequest{Resolution: "server"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already resolved")
}

func TestHandler_ListSessions(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	mockService.On("Sessions", mock.Anything, 1).Return([]sync.Session{
		{ID: uuid.New(), UserID: 1, DeviceID: "phone", Status: sync.SessionCompleted},
	}, nil)

	out, err := handler.listSessions(authedCtx(1), &listSessionsInput{})
	require.NoError(t, err)
	assert.Len(t, out.Body, 1)
}

func TestHandler_ListConflicts_UnresolvedOnly(t *testing.T) {
	mockService := new(MockService)
	handler := newTestHandler(mockService)

	mockService.On("Conflicts", mock.Anything, 1, true).Return([]sync.Conflict{}, nil)

	out, err := handler.listConflicts(authedCtx(1), &listConflictsInput{UnresolvedOnly: true})
	require.NoError(t, err)
	assert.NotNil(t, out.Body)
	assert.Empty(t, out.Body)

	mockService.AssertExpectations(t)
}
