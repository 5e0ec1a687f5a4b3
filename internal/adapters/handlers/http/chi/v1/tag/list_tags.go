package tag

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"tagboard/internal/core/domain"
)

// ListTagsV1 serves GET /tags?_page=&_per_page=&title=
func (h *HandlerV1) ListTagsV1(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := intParam(query.Get("_page"), 1)
	if err != nil || page <= 0 {
		http.Error(w, "_page must be a positive integer", http.StatusBadRequest)
		return
	}

	perPage, err := intParam(query.Get("_per_page"), domain.DefaultPerPage)
	if err != nil || perPage <= 0 || perPage > domain.MaxPerPage {
		http.Error(w, fmt.Sprintf("_per_page must be between 1 and %d", domain.MaxPerPage), http.StatusBadRequest)
		return
	}

	resp, err := h.tagService.ListTags(r.Context(), query.Get("title"), page, perPage)
	if err != nil {
		h.logger.Error("error listing tags", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
