// Package server exposes the consultation pipeline on a single interactive
// page: record or upload audio, attach an optional image, read the
// transcript and response, listen to the reply, and save the artifacts.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"docvoice/internal/consult"
	"docvoice/internal/paths"
)

//go:embed index.html
var indexHTML []byte

// Runner executes one consultation interaction.
type Runner interface {
	Run(ctx context.Context, req consult.Request) (*consult.Interaction, error)
}

// Server holds the pipeline and the last completed interaction, which the
// save action persists. Artifact files on disk remain last-writer-wins.
type Server struct {
	runner Runner
	paths  *paths.Builder

	mu   sync.Mutex
	last *consult.Interaction
}

func New(runner Runner, b *paths.Builder) *Server {
	return &Server{runner: runner, paths: b}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	r.Get("/", s.handleIndex)
	r.Post("/api/consult", s.handleConsult)
	r.Post("/api/save", s.handleSave)
	r.Get("/audio/response.mp3", s.handleAudio)
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("http request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start).String())
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

type consultResponse struct {
	ID         string `json:"id"`
	Transcript string `json:"transcript"`
	Response   string `json:"response"`
	AudioURL   string `json:"audioUrl,omitempty"`
	NoOp       bool   `json:"noOp,omitempty"`
}

// handleConsult accepts multipart form data with an optional "audio" part
// and an optional "image" part, runs the pipeline, and returns the result.
// A stage failure is reported for this interaction only; the server keeps
// serving.
func (s *Server) handleConsult(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return
	}
	if err := s.paths.EnsureOutDir(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var req consult.Request
	audioPath, err := s.saveUpload(r, "audio", s.paths.Recording())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.AudioPath = audioPath

	imagePath, err := s.saveUpload(r, "image", filepath.Join(s.paths.Base, "upload.img"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.ImagePath = imagePath

	inter, err := s.runner.Run(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	s.mu.Lock()
	s.last = inter
	s.mu.Unlock()

	resp := consultResponse{
		ID:         inter.ID,
		Transcript: inter.Transcript,
		Response:   inter.Response,
		NoOp:       inter.NoOp,
	}
	if inter.AudioPath != "" {
		resp.AudioURL = "/audio/response.mp3"
	}
	writeJSON(w, http.StatusOK, resp)
}

// saveUpload writes the named multipart file to dst and returns dst, or ""
// when the part is absent.
func (s *Server) saveUpload(r *http.Request, field, dst string) (string, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("read %s upload: %w", field, err)
	}
	defer file.Close()
	if err := writeUpload(file, dst); err != nil {
		return "", fmt.Errorf("store %s upload: %w", field, err)
	}
	return dst, nil
}

func writeUpload(src multipart.File, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last == nil {
		writeError(w, http.StatusConflict, errors.New("no consultation to save yet"))
		return
	}
	if err := consult.Save(s.paths, last); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"text":  s.paths.SavedTranscript(),
		"audio": s.paths.SavedAudio(),
	})
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	path := s.paths.ResponseAudio()
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	slog.Error("request failed", "status", status, "err", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
