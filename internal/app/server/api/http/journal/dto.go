package journal

import (
	"time"

	"journalsync/internal/domain/journal"
)

// SyncMetaResponse mirrors journal.SyncMeta on the wire.
type SyncMetaResponse struct {
	ID           string     `json:"id"`
	SyncVersion  int64      `json:"sync_version"`
	IsDeleted    bool       `json:"is_deleted"`
	IsSynced     bool       `json:"is_synced"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastSyncTime *time.Time `json:"last_sync_time,omitempty"`
}

func syncMetaResponse(m journal.SyncMeta) SyncMetaResponse {
	return SyncMetaResponse{
		ID:           m.ID.String(),
		SyncVersion:  m.SyncVersion,
		IsDeleted:    m.IsDeleted,
		IsSynced:     m.IsSynced,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		LastSyncTime: m.LastSyncTime,
	}
}

type EntryRequest struct {
	Title   string `json:"title" maxLength:"200" doc:"Entry title"`
	Content string `json:"content,omitempty" doc:"Entry body"`
}

type EntryResponse struct {
	SyncMetaResponse
	Title   string `json:"title"`
	Content string `json:"content"`
}

func entryResponse(e *journal.Entry) EntryResponse {
	return EntryResponse{
		SyncMetaResponse: syncMetaResponse(e.SyncMeta),
		Title:            e.Title,
		Content:          e.Content,
	}
}

type createEntryInput struct {
	Body EntryRequest
}

type entryOutput struct {
	Body EntryResponse
}

type getEntryInput struct {
	ID string `path:"id" doc:"Entry id"`
}

type listEntriesInput struct {
	IncludeDeleted bool `query:"include_deleted" doc:"Include soft-deleted entries"`
}

type listEntriesOutput struct {
	Body []EntryResponse
}

type updateEntryInput struct {
	ID   string `path:"id"`
	Body EntryRequest
}

type deleteInput struct {
	ID string `path:"id"`
}

type deleteOutput struct{}

type CategoryRequest struct {
	Name        string `json:"name" maxLength:"100" doc:"Category name"`
	Description string `json:"description,omitempty"`
}

type CategoryResponse struct {
	SyncMetaResponse
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func categoryResponse(c *journal.Category) CategoryResponse {
	return CategoryResponse{
		SyncMetaResponse: syncMetaResponse(c.SyncMeta),
		Name:             c.Name,
		Description:      c.Description,
	}
}

type createCategoryInput struct {
	Body CategoryRequest
}

type categoryOutput struct {
	Body CategoryResponse
}

type getCategoryInput struct {
	ID string `path:"id" doc:"Category id"`
}

type listCategoriesInput struct {
	IncludeDeleted bool `query:"include_deleted"`
}

type listCategoriesOutput struct {
	Body []CategoryResponse
}

type updateCategoryInput struct {
	ID   string `path:"id"`
	Body CategoryRequest
}

type TagRequest struct {
	Name  string `json:"name" maxLength:"50" doc:"Tag name"`
	Color string `json:"color,omitempty" maxLength:"20" doc:"Display color, defaults to #3498db"`
}

type TagResponse struct {
	SyncMetaResponse
	Name  string `json:"name"`
	Color string `json:"color"`
}

func tagResponse(t *journal.Tag) TagResponse {
	return TagResponse{
		SyncMetaResponse: syncMetaResponse(t.SyncMeta),
		Name:             t.Name,
		Color:            t.Color,
	}
}

type createTagInput struct {
	Body TagRequest
}

type tagOutput struct {
	Body TagResponse
}

type getTagInput struct {
	ID string `path:"id" doc:"Tag id"`
}

type listTagsInput struct {
	IncludeDeleted bool `query:"include_deleted"`
}

type listTagsOutput struct {
	Body []TagResponse
}

type updateTagInput struct {
	ID   string `path:"id"`
	Body TagRequest
}
