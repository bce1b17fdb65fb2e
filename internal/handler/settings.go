package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/skilletapp/skillet/internal/auth"
	"github.com/skilletapp/skillet/internal/store"
)

type SettingsHandler struct {
	store  *store.SettingsStore
	logger *slog.Logger
}

func NewSettingsHandler(s *store.SettingsStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{store: s, logger: logger}
}

func (h *SettingsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetAll(auth.UserID(r.Context()))
	if err != nil {
		h.logger.Error("get settings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Set upserts one setting. Only keys in store.AllowedSettingKeys are accepted.
func (h *SettingsHandler) Set(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if _, ok := store.AllowedSettingKeys[req.Key]; !ok {
		writeError(w, http.StatusBadRequest, "unknown setting key")
		return
	}

	if err := h.store.Set(userID, req.Key, req.Value); err != nil {
		h.logger.Error("set setting", "key", req.Key, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save setting")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": req.Key, "value": req.Value})
}
