package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HandleGetById handles GET requests to retrieve a specific document by ID
func (h *Handler) HandleGetById(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	docId := vars["id"]

	doc, err := h.storage.GetById(collName, docId)
	if err != nil {
		h.logger.Debug().Err(err).Str("collection", collName).Str("id", docId).Msg("document not found")
		WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, doc)
}
