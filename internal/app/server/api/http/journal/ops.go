package journal

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createEntryOp() huma.Operation {
	return huma.Operation{
		OperationID: "entry-create",
		Method:      http.MethodPost,
		Path:        "/api/journals",
		Summary:     "Create a journal entry",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listEntriesOp() huma.Operation {
	return huma.Operation{
		OperationID: "entry-list",
		Method:      http.MethodGet,
		Path:        "/api/journals",
		Summary:     "List journal entries",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getEntryOp() huma.Operation {
	return huma.Operation{
		OperationID: "entry-get",
		Method:      http.MethodGet,
		Path:        "/api/journals/{id}",
		Summary:     "Get a journal entry",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateEntryOp() huma.Operation {
	return huma.Operation{
		OperationID: "entry-update",
		Method:      http.MethodPut,
		Path:        "/api/journals/{id}",
		Summary:     "Update a journal entry",
		Tags:        []string{"entries"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteEntryOp() huma.Operation {
	return huma.Operation{
		OperationID:   "entry-delete",
		Method:        http.MethodDelete,
		Path:          "/api/journals/{id}",
		Summary:       "Soft-delete a journal entry",
		Tags:          []string{"entries"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) createCategoryOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-create",
		Method:      http.MethodPost,
		Path:        "/api/categories",
		Summary:     "Create a category",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listCategoriesOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-list",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "List categories",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getCategoryOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-get",
		Method:      http.MethodGet,
		Path:        "/api/categories/{id}",
		Summary:     "Get a category",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateCategoryOp() huma.Operation {
	return huma.Operation{
		OperationID: "category-update",
		Method:      http.MethodPut,
		Path:        "/api/categories/{id}",
		Summary:     "Update a category",
		Tags:        []string{"categories"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteCategoryOp() huma.Operation {
	return huma.Operation{
		OperationID:   "category-delete",
		Method:        http.MethodDelete,
		Path:          "/api/categories/{id}",
		Summary:       "Soft-delete a category",
		Tags:          []string{"categories"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) createTagOp() huma.Operation {
	return huma.Operation{
		OperationID: "tag-create",
		Method:      http.MethodPost,
		Path:        "/api/tags",
		Summary:     "Create a tag",
		Tags:        []string{"tags"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listTagsOp() huma.Operation {
	return huma.Operation{
		OperationID: "tag-list",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Tags:        []string{"tags"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getTagOp() huma.Operation {
	return huma.Operation{
		OperationID: "tag-get",
		Method:      http.MethodGet,
		Path:        "/api/tags/{id}",
		Summary:     "Get a tag",
		Tags:        []string{"tags"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateTagOp() huma.Operation {
	return huma.Operation{
		OperationID: "tag-update",
		Method:      http.MethodPut,
		Path:        "/api/tags/{id}",
		Summary:     "Update a tag",
		Tags:        []string{"tags"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteTagOp() huma.Operation {
	return huma.Operation{
		OperationID:   "tag-delete",
		Method:        http.MethodDelete,
		Path:          "/api/tags/{id}",
		Summary:       "Soft-delete a tag",
		Tags:          []string{"tags"},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}
