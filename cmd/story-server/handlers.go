package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/hn-aggregator/pkg/aggregator"
	"github.com/Sternrassler/hn-aggregator/pkg/hnclient"
)

// storyEngine is the slice of the aggregation engine the handlers need.
type storyEngine interface {
	GetPage(ctx context.Context, pageSize, pageNumber int) (aggregator.PageResult, error)
	Search(ctx context.Context, query string) (aggregator.PageResult, error)
}

type storyAPI struct {
	engine          storyEngine
	defaultPageSize int
	logger          zerolog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleStories serves GET /api/stories?size=N&page=M.
func (a *storyAPI) handleStories(w http.ResponseWriter, r *http.Request) {
	size, err := queryInt(r, "size", a.defaultPageSize)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "size must be an integer"})
		return
	}
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "page must be an integer"})
		return
	}

	result, err := a.engine.GetPage(r.Context(), size, page)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSearch serves GET /api/stories/search?q=term.
func (a *storyAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	result, err := a.engine.Search(r.Context(), query)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeError maps engine errors onto HTTP statuses: caller mistakes are
// 400s, upstream trouble is a gateway-style 502, anything else a 500.
func (a *storyAPI) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, aggregator.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, hnclient.ErrUpstreamUnavailable),
		errors.Is(err, hnclient.ErrMalformedResponse):
		a.logger.Error().Err(err).Msg("Upstream failure")
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream unavailable"})
	default:
		a.logger.Error().Err(err).Msg("Request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
