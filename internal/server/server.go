// Package server exposes the codec over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	xmlkv "github.com/KimNorgaard/go-xmlkv"
)

// Server is the HTTP API of xmlkv.
type Server struct {
	router  chi.Router
	codec   *xmlkv.Codec
	opts    []xmlkv.Option
	log     *slog.Logger
	maxBody int64
}

// New returns a server converting request bodies of at most maxBody bytes
// with a codec configured by opts.
func New(log *slog.Logger, maxBody int64, opts ...xmlkv.Option) (*Server, error) {
	codec, err := xmlkv.New(opts...)
	if err != nil {
		return nil, err
	}
	s := &Server{
		codec:   codec,
		opts:    opts,
		log:     log,
		maxBody: maxBody,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/flatten", s.handleFlatten)
	r.Post("/build", s.handleBuild)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
