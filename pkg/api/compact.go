package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HandleCompact handles POST requests to compact a collection's durable
// store down to its current in-memory snapshot.
func (h *Handler) HandleCompact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	if err := h.storage.Compact(collName); err != nil {
		h.logger.Error().Err(err).Str("collection", collName).Msg("compaction failed")
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info().Str("collection", collName).Msg("compaction triggered via API")
	w.WriteHeader(http.StatusNoContent)
}
