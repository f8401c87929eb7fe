package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) pullOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-pull",
		Method:      http.MethodGet,
		Path:        "/api/sync/pull",
		Summary:     "Pull changed records",
		Description: "Returns every record of the user changed after the given watermark, soft-deleted ones included",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) pushOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-push",
		Method:      http.MethodPost,
		Path:        "/api/sync/push",
		Summary:     "Push a batch of device-side changes",
		Description: "Applies the batch record by record, raising conflicts for records the server has moved past",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) resolveOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-resolve-conflict",
		Method:      http.MethodPost,
		Path:        "/api/sync/conflicts/{id}/resolve",
		Summary:     "Resolve a sync conflict",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listSessionsOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-list-sessions",
		Method:      http.MethodGet,
		Path:        "/api/sync/sessions",
		Summary:     "List sync sessions",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listConflictsOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-list-conflicts",
		Method:      http.MethodGet,
		Path:        "/api/sync/conflicts",
		Summary:     "List sync conflicts",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}
