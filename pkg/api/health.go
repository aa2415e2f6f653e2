package api

import (
	"net/http"
)

// HandleHealth reports service liveness
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStats reports engine memory and collection statistics
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.storage.GetMemoryStats())
}
