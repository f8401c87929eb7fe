package sync

import (
	"journalsync/internal/domain/sync"
)

type pullInput struct {
	DeviceID  string `query:"device" doc:"Identifier of the pulling device"`
	Watermark string `query:"watermark" doc:"Watermark in RFC3339; omit for a full pull"`
}

type pullOutput struct {
	Body PullResponse
}

type PullResponse struct {
	SessionID string                            `json:"session_id"`
	Records   map[sync.EntityType][]sync.Record `json:"records"`
}

type pushInput struct {
	Body PushRequest
}

type PushRequest struct {
	DeviceID string                                  `json:"device" doc:"Identifier of the pushing device"`
	Updates  map[sync.EntityType][]sync.RecordUpdate `json:"updates"`
}

type pushOutput struct {
	Body PushResponse
}

type PushResponse struct {
	SessionID string                                  `json:"session_id"`
	Results   map[sync.EntityType][]sync.RecordResult `json:"results"`
	Conflicts []sync.Conflict                         `json:"conflicts"`
}

type resolveInput struct {
	ID   string `path:"id" doc:"Conflict id"`
	Body ResolveRequest
}

// ResolveRequest carries the winning payload: client_data for client wins,
// merged_data for a manual merge, nothing for server wins.
type ResolveRequest struct {
	Resolution string         `json:"resolution" enum:"client,server,merged"`
	ClientData map[string]any `json:"client_data,omitempty"`
	MergedData map[string]any `json:"merged_data,omitempty"`
}

type resolveOutput struct {
	Body ResolveResponse
}

type ResolveResponse struct {
	Conflict    sync.Conflict `json:"conflict"`
	SyncVersion int64         `json:"sync_version"`
}

type listSessionsInput struct{}

type listSessionsOutput struct {
	Body []sync.Session
}

type listConflictsInput struct {
	UnresolvedOnly bool `query:"unresolved" doc:"Only conflicts still awaiting resolution"`
}

type listConflictsOutput struct {
	Body []sync.Conflict
}
