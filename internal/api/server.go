// Package api exposes the renderer over two surfaces: a local HTTP preview
// server and an MCP server for agent integrations. Both re-read the source
// file on every call, so edits show up without a restart.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cvforge/cvforge/internal/filter"
	"github.com/cvforge/cvforge/internal/render"
	"github.com/cvforge/cvforge/internal/resume"
)

// Deps holds what the preview handlers need.
type Deps struct {
	// Source is the path to the YAML resume file.
	Source string
	// DefaultMode applies when a request omits the mode parameter.
	DefaultMode filter.Mode
}

// NewHandler returns the preview server routes.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth())
	r.Get("/resume.md", handleRender(deps))
	r.Get("/tags", handleTags(deps))

	return r
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func handleRender(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		mode := q.Get("mode")
		if mode == "" {
			mode = string(deps.DefaultMode)
		}
		sel, err := filter.NewSelection(q.Get("include"), q.Get("exclude"), mode)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		doc, err := resume.Load(deps.Source)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "loading resume: %v", err)
			return
		}

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, render.Build(doc, sel))
	}
}

func handleTags(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := resume.Load(deps.Source)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "loading resume: %v", err)
			return
		}

		inventory := doc.TagInventory()
		if inventory == nil {
			inventory = []resume.TagCount{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(inventory)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
