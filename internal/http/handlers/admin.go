package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/http/requestutil"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/logging"
)

const maxAdminBody = 4 << 10

// SourceAdmin controls provider priority and caches. *connector.Connector satisfies it.
type SourceAdmin interface {
	Sources() []domain.Source
	SetSources(sources []domain.Source) error
	ClearAllCaches()
}

// SourcesPayload is the body of GET and PUT /admin/sources.
type SourcesPayload struct {
	Sources []domain.Source `json:"sources"`
}

// AdminHandler exposes operator endpoints guarded by a bearer token.
type AdminHandler struct {
	admin  SourceAdmin
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(admin SourceAdmin, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		token:  token,
		logger: logger,
	}
}

// Enabled reports whether an admin token is configured.
func (h *AdminHandler) Enabled() bool {
	return h != nil && h.token != ""
}

// Sources returns the current provider priority order.
func (h *AdminHandler) Sources(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, SourcesPayload{Sources: h.admin.Sources()}, loggerFromContext(r, h.logger))
}

// UpdateSources replaces the provider priority order.
func (h *AdminHandler) UpdateSources(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	var payload SourcesPayload
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAdminBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid body", logger)
		return
	}
	if err := h.admin.SetSources(payload.Sources); err != nil {
		logging.Warn(logger, "admin sources rejected", slog.Any("sources", payload.Sources), slog.Any("err", err))
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
		return
	}

	current := h.admin.Sources()
	logging.Info(logger, "admin sources updated", slog.String("sources", joinSources(current)))
	writeJSON(w, http.StatusOK, SourcesPayload{Sources: current}, logger)
}

// ClearCache empties every provider cache.
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	h.admin.ClearAllCaches()
	logging.Info(logger, "admin cache cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"}, logger)
}

func (h *AdminHandler) guard(w http.ResponseWriter, r *http.Request) bool {
	if h.authorize(r) {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}

func joinSources(sources []domain.Source) string {
	parts := make([]string, len(sources))
	for i, s := range sources {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
