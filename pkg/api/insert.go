package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/docbolt/docbolt/pkg/domain"
)

// HandleInsert handles POST requests to insert a new document
func (h *Handler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	var doc domain.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.logger.Error().Err(err).Str("collection", collName).Msg("decoding insert body failed")
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.storage.Insert(collName, doc)
	if err != nil {
		h.logger.Error().Err(err).Str("collection", collName).Msg("insert failed")
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Debug().Str("collection", collName).Str("id", id).Msg("document inserted")
	WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}
