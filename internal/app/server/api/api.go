//POST   /api/user/register                # Register (public)
//POST   /api/user/login                   # Login (public)
//POST   /api/journals                     # Create entry (auth)
//GET    /api/journals                     # List entries (auth)
//GET    /api/journals/{id}                # Get entry (auth)
//PUT    /api/journals/{id}                # Update entry (auth)
//DELETE /api/journals/{id}                # Soft-delete entry (auth)
//  ... same surface for /api/categories and /api/tags
//GET    /api/sync/pull                    # Pull changes since watermark (auth)
//POST   /api/sync/push                    # Push device changes (auth)
//POST   /api/sync/conflicts/{id}/resolve # Resolve a conflict (auth)
//GET    /api/sync/sessions                # Sync audit trail (auth)
//GET    /api/sync/conflicts               # Conflict list (auth)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "journalsync/internal/app/server/api/http/health"
	journalAPI "journalsync/internal/app/server/api/http/journal"
	"journalsync/internal/app/server/api/http/middleware"
	"journalsync/internal/app/server/api/http/middleware/auth"
	"journalsync/internal/app/server/api/http/middleware/logger"
	syncAPI "journalsync/internal/app/server/api/http/sync"
	userAPI "journalsync/internal/app/server/api/http/user"
	"journalsync/internal/domain/journal"
	"journalsync/internal/domain/session"
	"journalsync/internal/domain/sync"
	"journalsync/internal/domain/user"
	"journalsync/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health  *healthAPI.Handler
	User    *userAPI.Handler
	Journal *journalAPI.Handler
	Sync    *syncAPI.Handler
}

// New builds the *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Journalsync API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Journal.SetupRoutes(API)
	h.Sync.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := session.NewRepo(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage, log)
	userService := user.NewService(userRepo, user.NewPasswordValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	journalRepo := postgres.NewJournalRepository(storage, log)
	journalService := journal.NewService(journalRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	journalHandler := journalAPI.NewHandler(journalService, log, middlewares.GetAllAndClear())

	registry := sync.NewRegistry(
		sync.Entity{
			Type:           sync.TypeJournals,
			Validate:       journal.ValidateEntryPayload,
			ValidateCreate: journal.ValidateNewEntryPayload,
			Store:          postgres.NewEntrySyncStore(storage, log),
		},
		sync.Entity{
			Type:           sync.TypeCategories,
			Validate:       journal.ValidateCategoryPayload,
			ValidateCreate: journal.ValidateNewCategoryPayload,
			Store:          postgres.NewCategorySyncStore(storage, log),
		},
		sync.Entity{
			Type:           sync.TypeTags,
			Validate:       journal.ValidateTagPayload,
			ValidateCreate: journal.ValidateNewTagPayload,
			Store:          postgres.NewTagSyncStore(storage, log),
		},
	)
	syncService := sync.NewService(
		registry,
		postgres.NewSyncSessionRepository(storage, log),
		postgres.NewSyncConflictRepository(storage, log),
		postgres.NewTxManager(storage),
		log,
	)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	syncHandler := syncAPI.NewHandler(syncService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		User:    userHandler,
		Journal: journalHandler,
		Sync:    syncHandler,
	}
}
