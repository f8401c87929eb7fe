package sync

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"journalsync/internal/app/server/api/http/middleware/auth"
	"journalsync/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.pullOp(), h.pull)
	huma.Register(api, h.pushOp(), h.push)
	huma.Register(api, h.resolveOp(), h.resolve)
	huma.Register(api, h.listSessionsOp(), h.listSessions)
	huma.Register(api, h.listConflictsOp(), h.listConflicts)
}

func (h *Handler) userID(ctx context.Context) (int, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized")
	}
	return userID, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, sync.ErrMissingDevice),
		errors.Is(err, sync.ErrEmptyUpdates),
		errors.Is(err, sync.ErrUnknownEntityType),
		errors.Is(err, sync.ErrInvalidResolution),
		errors.Is(err, sync.ErrMissingPayload),
		errors.Is(err, sync.ErrInvalidPayload):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, sync.ErrConflictNotFound),
		errors.Is(err, sync.ErrRecordNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, sync.ErrConflictResolved):
		return huma.Error409Conflict(err.Error())
	default:
		h.log.Error("sync operation failed", "error", err)
		return huma.Error500InternalServerError("sync failed")
	}
}

func (h *Handler) pull(ctx context.Context, input *pullInput) (*pullOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	var watermark *time.Time
	if input.Watermark != "" {
		t, err := time.Parse(time.RFC3339, input.Watermark)
		if err != nil {
			return nil, huma.Error400BadRequest("watermark must be RFC3339")
		}
		watermark = &t
	}

	res, err := h.service.Pull(ctx, userID, input.DeviceID, watermark)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &pullOutput{
		Body: PullResponse{
			SessionID: res.SessionID.String(),
			Records:   res.Records,
		},
	}, nil
}

func (h *Handler) push(ctx context.Context, input *pushInput) (*pushOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Push(ctx, userID, input.Body.DeviceID, input.Body.Updates)
	if err != nil {
		return nil, h.mapError(err)
	}

	conflicts := res.Conflicts
	if conflicts == nil {
		conflicts = []sync.Conflict{}
	}

	return &pushOutput{
		Body: PushResponse{
			SessionID: res.SessionID.String(),
			Results:   res.Results,
			Conflicts: conflicts,
		},
	}, nil
}

func (h *Handler) resolve(ctx context.Context, input *resolveInput) (*resolveOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	conflictID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid conflict id")
	}

	resolution := sync.Resolution(input.Body.Resolution)
	var payload map[string]any
	switch resolution {
	case sync.ResolutionClient:
		payload = input.Body.ClientData
	case sync.ResolutionMerged:
		payload = input.Body.MergedData
	}

	res, err := h.service.Resolve(ctx, userID, conflictID, resolution, payload)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &resolveOutput{
		Body: ResolveResponse{
			Conflict:    res.Conflict,
			SyncVersion: res.SyncVersion,
		},
	}, nil
}

func (h *Handler) listSessions(ctx context.Context, _ *listSessionsInput) (*listSessionsOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := h.service.Sessions(ctx, userID)
	if err != nil {
		return nil, h.mapError(err)
	}
	if sessions == nil {
		sessions = []sync.Session{}
	}
	return &listSessionsOutput{Body: sessions}, nil
}

func (h *Handler) listConflicts(ctx context.Context, input *listConflictsInput) (*listConflictsOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	conflicts, err := h.service.Conflicts(ctx, userID, input.UnresolvedOnly)
	if err != nil {
		return nil, h.mapError(err)
	}
	if conflicts == nil {
		conflicts = []sync.Conflict{}
	}
	return &listConflictsOutput{Body: conflicts}, nil
}
