package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Daniru12/PcStore/internal/httpx"
	"github.com/Daniru12/PcStore/internal/services"
)

// writeServiceError maps the domain error taxonomy onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		httpx.Error(w, http.StatusBadRequest, "validation", ve.Error(), map[string]any{"field": ve.Field})
		return
	}
	var nfe *services.NotFoundError
	if errors.As(err, &nfe) {
		details := map[string]any{"resource": nfe.Resource}
		if len(nfe.IDs) > 0 {
			details["ids"] = nfe.IDs
		}
		httpx.Error(w, http.StatusNotFound, "not_found", nfe.Error(), details)
		return
	}
	var ise *services.IllegalStateError
	if errors.As(err, &ise) {
		httpx.Error(w, http.StatusConflict, "illegal_state", ise.Error(),
			map[string]any{"from": ise.From, "to": ise.To})
		return
	}
	var ce *services.ConflictError
	if errors.As(err, &ce) {
		httpx.Error(w, http.StatusConflict, "conflict", ce.Error(), nil)
		return
	}
	httpx.Error(w, http.StatusInternalServerError, "internal", "internal server error", nil)
}

// pathID parses the {id} path value as an unsigned integer.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
