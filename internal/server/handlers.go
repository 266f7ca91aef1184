package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gatestack/pkg/circuit/layout"
	"github.com/matzehuels/gatestack/pkg/circuitfile"
	apperrors "github.com/matzehuels/gatestack/pkg/errors"
	"github.com/matzehuels/gatestack/pkg/pipeline"
	"github.com/matzehuels/gatestack/pkg/share"
)

// contentTypes maps output format to response media type.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatText: "text/plain; charset=utf-8",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender renders a posted document in the requested format without
// storing anything. Format defaults to SVG.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{Quiet: true, Formats: []string{format}}
	if ws := r.URL.Query().Get("wires"); ws != "" {
		n, err := strconv.Atoi(ws)
		if err != nil || n < 0 {
			s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid wires parameter %q", ws))
			return
		}
		opts.Wires = n
	}

	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// handlePublish stores a posted document and returns its shareable ID.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// Reject documents the layout engine cannot place so a published URL
	// never 500s on fetch.
	if _, _, err := s.runner.Layout(doc, pipeline.Options{Quiet: true}); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := share.New(doc, s.cfg.ShareTTL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Set(r.Context(), rec); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "store circuit"))
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"id":         rec.ID,
		"url":        "/v1/circuits/" + rec.ID + ".svg",
		"expires_at": rec.ExpiresAt,
	})
}

func (s *Server) handleGetCircuit(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// handleGetCircuitSVG re-renders a published circuit on every fetch. The
// pipeline's artifact cache makes repeat fetches cheap.
func (s *Server) handleGetCircuitSVG(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), rec.Document, pipeline.Options{
		Formats: []string{pipeline.FormatSVG},
		Quiet:   true,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[pipeline.FormatSVG])
}

func (s *Server) handleDeleteCircuit(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "delete circuit"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*share.Record, bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, share.ErrNotFound), errors.Is(err, share.ErrExpired):
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeCircuitNotFound, "circuit %s not found", id))
		return nil, false
	case err != nil:
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInternal, err, "load circuit"))
		return nil, false
	}
	return rec, true
}

// readDocument decodes a JSON circuit document from the request body.
func (s *Server) readDocument(r *http.Request) (*circuitfile.Document, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read request body")
	}
	return circuitfile.ParseJSON(body)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if errors.Is(err, layout.ErrWireRange) {
		code = apperrors.ErrCodeWireRange
	} else if errors.Is(err, layout.ErrBadWidth) {
		code = apperrors.ErrCodeInvalidInput
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidDocument,
		apperrors.ErrCodeInvalidGate, apperrors.ErrCodeWireRange,
		apperrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeCircuitNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
