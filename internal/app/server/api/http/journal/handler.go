package journal

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"journalsync/internal/app/server/api/http/middleware/auth"
	"journalsync/internal/domain/journal"
)

type Handler struct {
	service    journal.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service journal.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createEntryOp(), h.createEntry)
	huma.Register(api, h.listEntriesOp(), h.listEntries)
	huma.Register(api, h.getEntryOp(), h.getEntry)
	huma.Register(api, h.updateEntryOp(), h.updateEntry)
	huma.Register(api, h.deleteEntryOp(), h.deleteEntry)

	huma.Register(api, h.createCategoryOp(), h.createCategory)
	huma.Register(api, h.listCategoriesOp(), h.listCategories)
	huma.Register(api, h.getCategoryOp(), h.getCategory)
	huma.Register(api, h.updateCategoryOp(), h.updateCategory)
	huma.Register(api, h.deleteCategoryOp(), h.deleteCategory)

	huma.Register(api, h.createTagOp(), h.createTag)
	huma.Register(api, h.listTagsOp(), h.listTags)
	huma.Register(api, h.getTagOp(), h.getTag)
	huma.Register(api, h.updateTagOp(), h.updateTag)
	huma.Register(api, h.deleteTagOp(), h.deleteTag)
}

func (h *Handler) userID(ctx context.Context) (int, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized")
	}
	return userID, nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest("invalid id")
	}
	return id, nil
}

func (h *Handler) mapError(err error) error {
	var verr *journal.ValidationError
	switch {
	case errors.As(err, &verr):
		return huma.Error422UnprocessableEntity(verr.Error())
	case errors.Is(err, journal.ErrNotFound):
		return huma.Error404NotFound("record not found")
	default:
		h.log.Error("journal operation failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func (h *Handler) createEntry(ctx context.Context, input *createEntryInput) (*entryOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	e, err := h.service.CreateEntry(ctx, userID, input.Body.Title, input.Body.Content)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &entryOutput{Body: entryResponse(e)}, nil
}

func (h *Handler) listEntries(ctx context.Context, input *listEntriesInput) (*listEntriesOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := h.service.ListEntries(ctx, userID, input.IncludeDeleted)
	if err != nil {
		return nil, h.mapError(err)
	}
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, entryResponse(&entries[i]))
	}
	return &listEntriesOutput{Body: out}, nil
}

func (h *Handler) getEntry(ctx context.Context, input *getEntryInput) (*entryOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	e, err := h.service.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &entryOutput{Body: entryResponse(e)}, nil
}

func (h *Handler) updateEntry(ctx context.Context, input *updateEntryInput) (*entryOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	e, err := h.service.UpdateEntry(ctx, userID, id, input.Body.Title, input.Body.Content)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &entryOutput{Body: entryResponse(e)}, nil
}

func (h *Handler) deleteEntry(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.service.DeleteEntry(ctx, userID, id); err != nil {
		return nil, h.mapError(err)
	}
	return &deleteOutput{}, nil
}

func (h *Handler) createCategory(ctx context.Context, input *createCategoryInput) (*categoryOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	c, err := h.service.CreateCategory(ctx, userID, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &categoryOutput{Body: categoryResponse(c)}, nil
}

func (h *Handler) listCategories(ctx context.Context, input *listCategoriesInput) (*listCategoriesOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := h.service.ListCategories(ctx, userID, input.IncludeDeleted)
	if err != nil {
		return nil, h.mapError(err)
	}
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, categoryResponse(&categories[i]))
	}
	return &listCategoriesOutput{Body: out}, nil
}

func (h *Handler) getCategory(ctx context.Context, input *getCategoryInput) (*categoryOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	c, err := h.service.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &categoryOutput{Body: categoryResponse(c)}, nil
}

func (h *Handler) updateCategory(ctx context.Context, input *updateCategoryInput) (*categoryOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	c, err := h.service.UpdateCategory(ctx, userID, id, input.Body.Name, input.Body.Description)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &categoryOutput{Body: categoryResponse(c)}, nil
}

func (h *Handler) deleteCategory(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.service.DeleteCategory(ctx, userID, id); err != nil {
		return nil, h.mapError(err)
	}
	return &deleteOutput{}, nil
}

func (h *Handler) createTag(ctx context.Context, input *createTagInput) (*tagOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	t, err := h.service.CreateTag(ctx, userID, input.Body.Name, input.Body.Color)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &tagOutput{Body: tagResponse(t)}, nil
}

func (h *Handler) listTags(ctx context.Context, input *listTagsInput) (*listTagsOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := h.service.ListTags(ctx, userID, input.IncludeDeleted)
	if err != nil {
		return nil, h.mapError(err)
	}
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, tagResponse(&tags[i]))
	}
	return &listTagsOutput{Body: out}, nil
}

func (h *Handler) getTag(ctx context.Context, input *getTagInput) (*tagOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	t, err := h.service.GetTag(ctx, userID, id)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &tagOutput{Body: tagResponse(t)}, nil
}

func (h *Handler) updateTag(ctx context.Context, input *updateTagInput) (*tagOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	t, err := h.service.UpdateTag(ctx, userID, id, input.Body.Name, input.Body.Color)
	if err != nil {
		return nil, h.mapError(err)
	}
	return &tagOutput{Body: tagResponse(t)}, nil
}

func (h *Handler) deleteTag(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.service.DeleteTag(ctx, userID, id); err != nil {
		return nil, h.mapError(err)
	}
	return &deleteOutput{}, nil
}
