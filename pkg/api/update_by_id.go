package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/docbolt/docbolt/pkg/domain"
)

// HandleUpdateById handles PATCH requests to merge updates into a document
func (h *Handler) HandleUpdateById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	docId := vars["id"]

	var updates domain.Document
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.logger.Error().Err(err).Str("collection", collName).Msg("decoding update body failed")
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.storage.UpdateById(collName, docId, updates); err != nil {
		h.logger.Debug().Err(err).Str("collection", collName).Str("id", docId).Msg("update failed")
		WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
