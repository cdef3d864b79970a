// Package httpapi exposes the document model over HTTP: ingestion,
// text and export views, and the editing operations.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tsawler/folio/internal/config"
	"github.com/tsawler/folio/internal/store"
	"github.com/tsawler/folio/translate"
)

// Server is the HTTP API server for folio.
type Server struct {
	router     chi.Router
	store      *store.Store
	translator translate.Service
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server. translator may be
// nil when no translation gateway is configured; the translate endpoint
// then reports 503.
func NewServer(st *store.Store, translator translate.Service, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:      st,
		translator: translator,
		log:        log,
		cfg:        cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints. Auth is optional: with no key configured
	// the API is open, for local single-user use.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents", s.handleListDocuments)

		r.Route("/api/documents/{docID}", func(r chi.Router) {
			r.Get("/", s.handleDocumentInfo)
			r.Delete("/", s.handleDeleteDocument)

			r.Get("/text", s.handleDocumentText)
			r.Get("/pages/{page}/text", s.handlePageText)
			r.Get("/pages/{page}/elements", s.handlePageElements)
			r.Get("/export/markdown", s.handleExportMarkdown)
			r.Get("/export/html", s.handleExportHTML)

			r.Put("/margin", s.handleSetMargin)
			r.Post("/merge", s.handleMerge)
			r.Post("/move", s.handleMove)

			r.Route("/elements/{key}", func(r chi.Router) {
				r.Post("/visible", s.handleToggleVisible)
				r.Post("/body", s.handleToggleBody)
				r.Post("/continuation", s.handleToggleContinuation)
				r.Post("/split", s.handleSplit)
				r.Post("/translate", s.handleTranslate)
			})
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
