package router

import (
	"net/http"
	"time"

	"baby-care-log/internal/adapters/auth/codes"
	"baby-care-log/internal/adapters/store/feishu"
	"baby-care-log/internal/adapters/store/memory"
	"baby-care-log/internal/config"
	"baby-care-log/internal/domain/records"
	"baby-care-log/internal/middleware"
	"baby-care-log/internal/platform/logger"

	_ "baby-care-log/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config

	// Opcional: store explícito (tests). Si es nil se elige por config:
	// con credenciales Feishu completas => Bitable, si no => in-memory.
	Store records.Store

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	resolver := codes.NewResolver(opts.Config.Auth.EditorCode, opts.Config.Auth.ViewerCode)

	store := opts.Store
	if store == nil {
		if opts.Config.FeishuConfigured() {
			client, err := feishu.NewClient(feishu.Config{
				AppID:     opts.Config.Feishu.AppID,
				AppSecret: opts.Config.Feishu.AppSecret,
			})
			if err == nil {
				store = feishu.NewStore(client, opts.Config.Bitable.AppToken, opts.Config.Bitable.TableID)
				log.Info("using bitable store", map[string]any{"table": opts.Config.Bitable.TableID})
			}
		}
		if store == nil {
			store = memory.NewStore()
			log.Warn("feishu not configured, using in-memory store", nil)
		}
	}

	svc := records.NewService(store, opts.Config.FeedIntervalMinutes)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.AuthContext(resolver))

		// Exentos del gate: no leen claims.
		api.Get("/health", healthHandler)
		api.Post("/auth/login", loginHandler(resolver))

		records.RegisterRoutes(api, svc)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// healthHandler godoc
// @Summary Health check
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UnixMilli(),
	})
}
