package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HandleCreateIndex handles POST requests to create an index on a field
func (h *Handler) HandleCreateIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	field := vars["field"]

	if err := h.storage.CreateIndex(collName, field); err != nil {
		h.logger.Error().Err(err).Str("collection", collName).Str("field", field).Msg("create index failed")
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleDropIndex handles DELETE requests to remove an index
func (h *Handler) HandleDropIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	field := vars["field"]

	if err := h.storage.DropIndex(collName, field); err != nil {
		h.logger.Debug().Err(err).Str("collection", collName).Str("field", field).Msg("drop index failed")
		WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetIndexes handles GET requests listing a collection's indexes
func (h *Handler) HandleGetIndexes(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	fields, err := h.storage.GetIndexes(collName)
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"indexes": fields})
}
