package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/poller"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/timeutil"
)

// Data is the read surface served over HTTP. *connector.Connector satisfies it.
type Data interface {
	Scoreboard(ctx context.Context, date string) []domain.Game
	BoxScore(ctx context.Context, gameID string, source domain.Source) *domain.BoxScore
	PlayByPlay(ctx context.Context, gameID string, source domain.Source) []domain.PlayByPlayEvent
	Standings(ctx context.Context, season string, source domain.Source) []domain.StandingEntry
	Rankings(ctx context.Context, week string, source domain.Source) []domain.RankingEntry
}

// ScoreboardResponse is the body of GET /v1/scoreboard.
type ScoreboardResponse struct {
	Date  string        `json:"date,omitempty"`
	Games []domain.Game `json:"games"`
}

// PlaysResponse is the body of GET /v1/games/{id}/plays.
type PlaysResponse struct {
	GameID string                   `json:"gameId"`
	Plays  []domain.PlayByPlayEvent `json:"plays"`
}

// StandingsResponse is the body of GET /v1/standings.
type StandingsResponse struct {
	Season    string                 `json:"season,omitempty"`
	Standings []domain.StandingEntry `json:"standings"`
}

// RankingsResponse is the body of GET /v1/rankings.
type RankingsResponse struct {
	Week     string                `json:"week,omitempty"`
	Rankings []domain.RankingEntry `json:"rankings"`
}

// Handler wires HTTP routes to the connector.
type Handler struct {
	data     Data
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the service is always ready.
func NewHandler(data Data, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		data:     data,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Scoreboard returns the games for ?date= (ISO, compact or slash), defaulting to today.
func (h *Handler) Scoreboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	resp := ScoreboardResponse{}
	if date != "" {
		day, err := timeutil.NormalizeDate(date)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid date (expected YYYY-MM-DD, YYYYMMDD or YYYY/MM/DD)", logger)
			return
		}
		resp.Date = timeutil.FormatDate(day)
	}

	resp.Games = h.data.Scoreboard(r.Context(), date)
	logging.Debug(logger, "served scoreboard",
		logging.FieldDate, resp.Date,
		logging.FieldCount, len(resp.Games),
	)
	writeJSON(w, nethttp.StatusOK, resp, logger)
}

// BoxScore returns the box score for a game, or 404 when no provider has one.
func (h *Handler) BoxScore(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := gameID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", logger)
		return
	}
	source, ok := sourceParam(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "unknown source", logger)
		return
	}

	box := h.data.BoxScore(r.Context(), id, source)
	if box == nil {
		writeError(w, r, nethttp.StatusNotFound, "box score not found", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, box, logger)
}

// Plays returns the play-by-play feed for a game.
func (h *Handler) Plays(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := gameID(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", logger)
		return
	}
	source, ok := sourceParam(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "unknown source", logger)
		return
	}

	writeJSON(w, nethttp.StatusOK, PlaysResponse{
		GameID: id,
		Plays:  h.data.PlayByPlay(r.Context(), id, source),
	}, logger)
}

// Standings returns conference standings for ?season= (empty means current).
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	source, ok := sourceParam(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "unknown source", logger)
		return
	}
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	writeJSON(w, nethttp.StatusOK, StandingsResponse{
		Season:    season,
		Standings: h.data.Standings(r.Context(), season, source),
	}, logger)
}

// Rankings returns the poll for ?week= (empty means latest).
func (h *Handler) Rankings(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	source, ok := sourceParam(r)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "unknown source", logger)
		return
	}
	week := strings.TrimSpace(r.URL.Query().Get("week"))
	writeJSON(w, nethttp.StatusOK, RankingsResponse{
		Week:     week,
		Rankings: h.data.Rankings(r.Context(), week, source),
	}, logger)
}

func gameID(r *nethttp.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		return "", false
	}
	return id, true
}

// sourceParam reads ?source=. Empty means "use the priority chain".
func sourceParam(r *nethttp.Request) (domain.Source, bool) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("source")))
	if raw == "" {
		return "", true
	}
	return domain.ParseSource(raw)
}
