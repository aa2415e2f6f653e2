package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HandleFindAll handles GET requests with optional query-parameter
// filters; every query parameter becomes an equality criterion.
func (h *Handler) HandleFindAll(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	filter := make(map[string]interface{})
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}

	docs, err := h.storage.FindAll(collName, filter)
	if err != nil {
		h.logger.Debug().Err(err).Str("collection", collName).Msg("find failed")
		WriteJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, docs)
}
