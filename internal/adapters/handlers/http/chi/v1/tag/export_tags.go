package tag

import (
	"encoding/json"
	"net/http"
)

// ExportTagsV1 serves GET /tags/export?title=
func (h *HandlerV1) ExportTagsV1(w http.ResponseWriter, r *http.Request) {

	export, err := h.tagService.ExportTags(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		h.logger.Error("error exporting tags", "error", err)
		http.Error(w, "export unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(export); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
