package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	// Pull returns every record of the user changed strictly after the
	// watermark; a nil watermark means everything.
	Pull(ctx context.Context, userID int, deviceID string, watermark *time.Time) (*PullResult, error)

	// Push applies a batch of client-side records, raising a Conflict for
	// every record whose stored version is ahead of the claimed one.
	Push(ctx context.Context, userID int, deviceID string, updates map[EntityType][]RecordUpdate) (*PushResult, error)

	// Resolve finalizes a conflict with the chosen strategy, leaving the
	// record at a version strictly greater than both conflicting versions.
	Resolve(ctx context.Context, userID int, conflictID uuid.UUID, resolution Resolution, payload map[string]any) (*ResolveResult, error)

	Sessions(ctx context.Context, userID int) ([]Session, error)
	Conflicts(ctx context.Context, userID int, unresolvedOnly bool) ([]Conflict, error)
}

type Service struct {
	registry  *Registry
	sessions  SessionRepository
	conflicts ConflictRepository
	tx        TxManager
	log       *slog.Logger
	now       func() time.Time
}

func NewService(registry *Registry, sessions SessionRepository, conflicts ConflictRepository, tx TxManager, log *slog.Logger) *Service {
	return &Service{
		registry:  registry,
		sessions:  sessions,
		conflicts: conflicts,
		tx:        tx,
		log:       log.With("component", "sync_service"),
		now:       time.Now,
	}
}

func (s *Service) Pull(ctx context.Context, userID int, deviceID string, watermark *time.Time) (*PullResult, error) {
	if deviceID == "" {
		return nil, ErrMissingDevice
	}

	var since time.Time
	if watermark != nil {
		since = *watermark
	}

	session, err := s.openSession(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	records := make(map[EntityType][]Record, len(s.registry.Types()))
	total := 0

	// One transaction so the reads share a snapshot: a concurrent push is
	// visible all-or-none, never half-applied.
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		for _, t := range s.registry.Types() {
			ent, err := s.registry.Lookup(t)
			if err != nil {
				return err
			}
			recs, err := ent.Store.ChangedSince(ctx, userID, since)
			if err != nil {
				return fmt.Errorf("%s changed since: %w", t, err)
			}
			records[t] = recs
			total += len(recs)
		}
		return nil
	})
	if err != nil {
		s.failSession(ctx, session.ID, err)
		return nil, fmt.Errorf("pull records: %w", err)
	}

	if err := s.sessions.Complete(ctx, session.ID, total, 0, 0); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	s.log.Info("pull completed",
		"session_id", session.ID, "user_id", userID, "device_id", deviceID, "items_sent", total)

	return &PullResult{SessionID: session.ID, Records: records}, nil
}

func (s *Service) Push(ctx context.Context, userID int, deviceID string, updates map[EntityType][]RecordUpdate) (*PushResult, error) {
	if deviceID == "" {
		return nil, ErrMissingDevice
	}
	if len(updates) == 0 {
		return nil, ErrEmptyUpdates
	}
	// An unknown type is a structurally invalid request: reject before a
	// session exists.
	for t := range updates {
		if _, err := s.registry.Lookup(t); err != nil {
			return nil, err
		}
	}

	session, err := s.openSession(ctx, userID, deviceID)
	if err != nil {
		return nil, err
	}

	results := make(map[EntityType][]RecordResult, len(updates))
	var conflicts []Conflict
	received := 0

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		for _, t := range s.registry.Types() {
			batch, ok := updates[t]
			if !ok {
				continue
			}
			ent, err := s.registry.Lookup(t)
			if err != nil {
				return err
			}
			for _, upd := range batch {
				if upd.ID == uuid.Nil {
					// Not an update-or-create without an id.
					continue
				}
				res, conflict, err := s.applyRecord(ctx, session.ID, ent, userID, upd)
				if err != nil {
					return err
				}
				if conflict != nil {
					conflicts = append(conflicts, *conflict)
					continue
				}
				results[t] = append(results[t], res)
				received++
			}
		}
		return nil
	})
	if err != nil {
		s.failSession(ctx, session.ID, err)
		return nil, fmt.Errorf("push batch: %w", err)
	}

	if err := s.sessions.Complete(ctx, session.ID, 0, received, len(conflicts)); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	s.log.Info("push completed",
		"session_id", session.ID, "user_id", userID, "device_id", deviceID,
		"items_received", received, "conflicts", len(conflicts))

	return &PushResult{SessionID: session.ID, Results: results, Conflicts: conflicts}, nil
}

// applyRecord handles one record of a push batch. Validation failures and
// write errors become an error result; only a failure of the surrounding
// read or of conflict bookkeeping aborts the batch.
func (s *Service) applyRecord(ctx context.Context, sessionID uuid.UUID, ent Entity, userID int, upd RecordUpdate) (RecordResult, *Conflict, error) {
	stored, err := ent.Store.GetForUpdate(ctx, userID, upd.ID)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		if verr := ent.ValidateCreate(upd.Payload); verr != nil {
			return errorResult(upd.ID, verr), nil, nil
		}
		version := upd.SyncVersion
		if version < 1 {
			version = 1
		}
		err := s.tx.InTx(ctx, func(ctx context.Context) error {
			_, err := ent.Store.CreateSynced(ctx, userID, upd, version)
			return err
		})
		if err != nil {
			s.log.Error("push create failed",
				"entity_type", ent.Type, "object_id", upd.ID, "error", err)
			return RecordResult{ID: upd.ID, Status: ResultError, Message: err.Error()}, nil, nil
		}
		return RecordResult{ID: upd.ID, Status: ResultCreated}, nil, nil
	case err != nil:
		return RecordResult{}, nil, fmt.Errorf("read %s %s: %w", ent.Type, upd.ID, err)
	}

	if stored.SyncVersion > upd.SyncVersion {
		conflict := &Conflict{
			ID:            uuid.New(),
			SessionID:     sessionID,
			EntityType:    ent.Type,
			ObjectID:      upd.ID,
			ClientVersion: upd.SyncVersion,
			ServerVersion: stored.SyncVersion,
			CreatedAt:     s.now(),
		}
		if err := s.conflicts.Create(ctx, conflict); err != nil {
			return RecordResult{}, nil, fmt.Errorf("record conflict: %w", err)
		}
		return RecordResult{}, conflict, nil
	}

	if verr := ent.Validate(upd.Payload); verr != nil {
		return errorResult(upd.ID, verr), nil, nil
	}

	deleted := upd.IsDeleted
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		return ent.Store.ApplySynced(ctx, userID, upd.ID, upd.Payload, &deleted, stored.SyncVersion+1)
	})
	if err != nil {
		s.log.Error("push update failed",
			"entity_type", ent.Type, "object_id", upd.ID, "error", err)
		return RecordResult{ID: upd.ID, Status: ResultError, Message: err.Error()}, nil, nil
	}
	return RecordResult{ID: upd.ID, Status: ResultUpdated}, nil, nil
}

func (s *Service) Resolve(ctx context.Context, userID int, conflictID uuid.UUID, resolution Resolution, payload map[string]any) (*ResolveResult, error) {
	if !resolution.Valid() {
		return nil, ErrInvalidResolution
	}
	if resolution == ResolutionServer {
		// The server copy stands as-is; any payload sent along is ignored.
		payload = nil
	} else if payload == nil {
		return nil, ErrMissingPayload
	}

	conflict, err := s.conflicts.GetForUser(ctx, userID, conflictID)
	if err != nil {
		return nil, err
	}
	if conflict.Resolved {
		return nil, ErrConflictResolved
	}

	ent, err := s.registry.Lookup(conflict.EntityType)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		if verr := ent.Validate(payload); verr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, verr)
		}
	}

	// Every resolution, server-wins included, restamps the record at a
	// version dominating both sides; otherwise the losing device could
	// replay its stale push and reopen the same conflict forever.
	newVersion := max(conflict.ClientVersion, conflict.ServerVersion) + 1
	resolvedAt := s.now()

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := ent.Store.GetForUpdate(ctx, userID, conflict.ObjectID); err != nil {
			return err
		}
		if err := ent.Store.ApplySynced(ctx, userID, conflict.ObjectID, payload, nil, newVersion); err != nil {
			return fmt.Errorf("apply resolution: %w", err)
		}
		if err := s.conflicts.MarkResolved(ctx, conflict.ID, resolution, resolvedAt); err != nil {
			return fmt.Errorf("mark resolved: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	conflict.Resolved = true
	conflict.Resolution = resolution
	conflict.ResolvedAt = &resolvedAt

	s.log.Info("conflict resolved",
		"conflict_id", conflict.ID, "entity_type", conflict.EntityType,
		"object_id", conflict.ObjectID, "resolution", resolution, "new_version", newVersion)

	return &ResolveResult{Conflict: *conflict, SyncVersion: newVersion}, nil
}

func (s *Service) Sessions(ctx context.Context, userID int) ([]Session, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *Service) Conflicts(ctx context.Context, userID int, unresolvedOnly bool) ([]Conflict, error) {
	conflicts, err := s.conflicts.ListByUser(ctx, userID, unresolvedOnly)
	if err != nil {
		return nil, fmt.Errorf("list conflicts: %w", err)
	}
	return conflicts, nil
}

func (s *Service) openSession(ctx context.Context, userID int, deviceID string) (*Session, error) {
	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		DeviceID:  deviceID,
		StartedAt: s.now(),
		Status:    SessionStarted,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("open sync session: %w", err)
	}
	return session, nil
}

// failSession moves a session to failed so it never stays started forever.
func (s *Service) failSession(ctx context.Context, id uuid.UUID, cause error) {
	if err := s.sessions.Fail(ctx, id, cause.Error()); err != nil {
		s.log.Error("failed to mark session failed", "session_id", id, "error", err)
	}
}

// fieldErrorer exposes per-field validation details; journal validators
// implement it.
type fieldErrorer interface {
	FieldErrors() map[string]string
}

func errorResult(id uuid.UUID, err error) RecordResult {
	res := RecordResult{ID: id, Status: ResultError, Message: err.Error()}
	var fe fieldErrorer
	if errors.As(err, &fe) {
		res.Errors = fe.FieldErrors()
		res.Message = "validation failed"
	}
	return res
}
