package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	xmlkv "github.com/KimNorgaard/go-xmlkv"
	"github.com/KimNorgaard/go-xmlkv/internal/ctxlog"
	"github.com/KimNorgaard/go-xmlkv/internal/formatter"
)

// handleFlatten converts an XML body into a flat map, rendered as JSON unless
// the format query parameter names another format.
func (s *Server) handleFlatten(w http.ResponseWriter, r *http.Request) {
	f, ok := s.format(w, r)
	if !ok {
		return
	}
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	m, err := s.codec.FlattenBytes(data)
	if err != nil {
		s.fail(w, r, err, http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := formatter.Write(&buf, m, f); err != nil {
		s.fail(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", f.MediaType())
	w.Write(buf.Bytes())
}

// handleBuild converts a flat map body, JSON unless the format query
// parameter names another format, into an XML document.
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	f, ok := s.format(w, r)
	if !ok {
		return
	}
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	m, err := formatter.Read(bytes.NewReader(data), f)
	if err != nil {
		s.fail(w, r, err, http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := xmlkv.NewEncoder(&buf, s.opts...).Encode(m); err != nil {
		s.fail(w, r, err, http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Write(buf.Bytes())
}

func (s *Server) format(w http.ResponseWriter, r *http.Request) (formatter.Format, bool) {
	name := r.URL.Query().Get("format")
	if name == "" {
		return formatter.JSON, true
	}
	f, err := formatter.ParseFormat(name)
	if err != nil {
		s.fail(w, r, err, http.StatusBadRequest)
		return "", false
	}
	return f, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, err, http.StatusRequestEntityTooLarge)
		} else {
			s.fail(w, r, err, http.StatusBadRequest)
		}
		return nil, false
	}
	return data, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, code int) {
	ctxlog.FromContext(r.Context()).Warn("request failed", "status", code, "error", err)
	jsonError(w, err.Error(), code)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
