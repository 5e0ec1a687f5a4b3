package tag

import (
	"encoding/json"
	"errors"
	"net/http"
	"tagboard/internal/core/domain"
)

// V1CreateTagRequest is the body request for Create Tag
type V1CreateTagRequest struct {
	Title string `json:"title"`
}

// CreateTagV1 is the handler for create tag v1
func (h *HandlerV1) CreateTagV1(w http.ResponseWriter, r *http.Request) {

	var req V1CreateTagRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding create tag request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), req.Title)
	switch {
	case errors.Is(err, domain.ErrInvalidTitle), errors.Is(err, domain.ErrTitleTooLong):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrAlreadyExists):
		h.logger.Warn("tag already exists", "title", req.Title)
		http.Error(w, "tag already exists", http.StatusConflict)
	case err != nil:
		h.logger.Error("error creating tag", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(tag); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
