// Package api exposes the pipeline as an HTTP service: callers upload the
// session artifacts and receive the enriched timeline as JSON instead of a
// CSV file.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/classpulse/classpulse/internal/model"
	"github.com/classpulse/classpulse/internal/pipeline"
)

const maxUploadBytes = 32 << 20 // 32 MiB across all uploaded artifacts

// Runner runs one pipeline pass; satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, in pipeline.Inputs) (*model.Timeline, error)
}

// Server handles artifact uploads and returns enriched timelines.
type Server struct {
	router *chi.Mux
	port   int
	runner Runner
	log    zerolog.Logger
}

// NewServer creates the HTTP server around a pipeline.
func NewServer(port int, runner Runner, log zerolog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		runner: runner,
		log:    log,
	}

	router.Get("/health", s.health)
	router.Post("/api/process", s.process)

	return s
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info().Str("addr", addr).Msg("API server starting")
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// process accepts multipart uploads: transcript and chat are required;
// roster, ngrams and lesson are optional and switch their stages on.
func (s *Server) process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse upload: %v", err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	transcript, err := requiredFile(r, "transcript")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer transcript.Close()

	chat, err := requiredFile(r, "chat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer chat.Close()

	inputs := pipeline.Inputs{
		Captions: transcript,
		Chat:     chat,
	}

	for name, target := range map[string]*io.Reader{
		"ngrams": &inputs.Rules,
		"lesson": &inputs.Reference,
		"roster": &inputs.Roster,
	} {
		file := optionalFile(r, name)
		if file != nil {
			defer file.Close()
			*target = file
		}
	}

	tl, err := s.runner.Run(r.Context(), inputs)
	if err != nil {
		s.log.Error().Err(err).Msg("pipeline run failed")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.log.Info().
		Int("entries", len(tl.Entries)).
		Bool("categorized", tl.Categorized).
		Bool("scored", tl.Scored).
		Msg("processed session")

	writeJSON(w, http.StatusOK, tl)
}

func requiredFile(r *http.Request, name string) (multipart.File, error) {
	file, _, err := r.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("%s file is required", name)
		}
		return nil, fmt.Errorf("read %s upload: %w", name, err)
	}
	return file, nil
}

func optionalFile(r *http.Request, name string) multipart.File {
	file, _, err := r.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
