package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	sheetstore "github.com/ideamans/go-sheetstore"
)

// Store is the record store surface the HTTP layer exposes.
// *sheetstore.Store satisfies it; tests substitute a stub.
type Store interface {
	Query(ctx context.Context, criteria sheetstore.Criteria) ([]sheetstore.Record, error)
	Fields(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, records ...sheetstore.Record) ([]sheetstore.Record, error)
	Update(ctx context.Context, criteria sheetstore.Criteria, patch sheetstore.Record) ([]sheetstore.Record, error)
}

// Server serves the store operations as a JSON API.
type Server struct {
	store  Store
	logger logrus.FieldLogger
}

// NewServer creates an API server over the given store.
func NewServer(store Store, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{store: store, logger: logger}
}

// Router initialises a new http router and applies all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/fields", s.getFields)
	r.Route("/records", func(r chi.Router) {
		r.Get("/", s.getRecords)
		r.Post("/", s.postRecords)
		r.Patch("/", s.patchRecords)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("handled request")
	})
}
