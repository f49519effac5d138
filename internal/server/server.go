// Package server exposes the diagram pipeline over HTTP.
//
// This is the surface a browser-based editor calls: it posts raw
// introspection metadata and receives a normalized, positioned diagram
// back, optionally with rendered artifacts.
//
// Routes:
//
//	GET  /healthz      liveness check
//	POST /v1/diagrams  metadata in, positioned diagram out
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/erdcanvas/erdcanvas/pkg/errors"
	"github.com/erdcanvas/erdcanvas/pkg/export"
	"github.com/erdcanvas/erdcanvas/pkg/meta"
	"github.com/erdcanvas/erdcanvas/pkg/model"
	"github.com/erdcanvas/erdcanvas/pkg/pipeline"
)

// maxBodyBytes caps request bodies; introspection dumps for large schemas
// stay well below this.
const maxBodyBytes = 32 << 20

// Server handles HTTP requests for the diagram pipeline.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server backed by the given pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP handler with middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/diagrams", s.handleCreateDiagram)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// diagramRequest is the POST /v1/diagrams body.
type diagramRequest struct {
	Name          string               `json:"name"`
	Seed          uint64               `json:"seed,omitempty"`
	Metadata      meta.Metadata        `json:"metadata"`
	Relationships []model.Relationship `json:"relationships,omitempty"`
	Formats       []string             `json:"formats,omitempty"`
	Detailed      bool                 `json:"detailed,omitempty"`
}

// diagramResponse is the POST /v1/diagrams reply. Artifact bytes are
// base64-encoded by the JSON encoder.
type diagramResponse struct {
	Diagram   model.Diagram     `json:"diagram"`
	Hash      string            `json:"hash"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
}

func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	opts := pipeline.Options{
		Name:          req.Name,
		Seed:          req.Seed,
		Relationships: req.Relationships,
		Detailed:      req.Detailed,
	}
	for _, f := range req.Formats {
		format, err := export.ParseFormat(f)
		if err != nil {
			writeError(w, err)
			return
		}
		opts.Formats = append(opts.Formats, format)
	}

	result, err := s.runner.Execute(r.Context(), req.Metadata, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := diagramResponse{
		Diagram: result.Diagram,
		Hash:    result.DiagramHash,
	}
	// The diagram document itself is always in the response, so the JSON
	// artifact would only duplicate it.
	for format, data := range result.Artifacts {
		if format == string(export.FormatJSON) {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string][]byte)
		}
		resp.Artifacts[format] = data
	}

	writeJSON(w, http.StatusCreated, resp)
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMetadata,
		errors.ErrCodeInvalidDiagram, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDiagramNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{
		Code:  string(code),
		Error: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
