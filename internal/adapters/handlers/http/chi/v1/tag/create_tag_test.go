package tag_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	httpgo "net/http"
	"net/http/httptest"
	"tagboard/internal/adapters/handlers/http/chi"
	tag2 "tagboard/internal/adapters/handlers/http/chi/v1/tag"
	"tagboard/internal/core/domain"
	tagservice "tagboard/internal/core/service/tag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTagV1_Success(t *testing.T) {

	//Arrange
	created := &domain.Tag{ID: "7", Title: "Go Lang", Slug: "go-lang"}
	mockTagService := &tagservice.MockTagService{}
	mockTagService.On("CreateTag", mock.Anything, "Go Lang").Return(created, nil)
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := tag2.NewTagHandlerV1(mockTagService, discardLogger)

	h := chi.NewRouter(discardLogger, handler, "")
	w := httptest.NewRecorder()

	jsonBody, err := json.Marshal(tag2.V1CreateTagRequest{Title: "Go Lang"})
	require.NoError(t, err)
	req := httptest.NewRequest(httpgo.MethodPost, "/tags", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	//Act
	h.ServeHTTP(w, req)

	//Assert
	assert.Equal(t, httpgo.StatusCreated, w.Code)
	var resp domain.Tag
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "go-lang", resp.Slug)
	assert.Equal(t, 0, resp.AmountOfVideos)
	mockTagService.AssertExpectations(t)
}

func TestCreateTagV1_Error(t *testing.T) {

	t.Run("Missing body", func(t *testing.T) {

		//Arrange
		mockTagService := &tagservice.MockTagService{}
		discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

		handler := tag2.NewTagHandlerV1(mockTagService, discardLogger)

		h := chi.NewRouter(discardLogger, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(httpgo.MethodPost, "/tags", nil)
		req.Header.Set("Content-Type", "application/json")

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, httpgo.StatusBadRequest, w.Code)
		mockTagService.AssertExpectations(t)
	})

	for _, tc := range []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid title", domain.ErrInvalidTitle, httpgo.StatusBadRequest},
		{"title too long", domain.ErrTitleTooLong, httpgo.StatusBadRequest},
		{"already exists", domain.ErrAlreadyExists, httpgo.StatusConflict},
		{"internal error", assert.AnError, httpgo.StatusServiceUnavailable},
	} {
		t.Run(tc.name, func(t *testing.T) {

			//Arrange
			mockTagService := &tagservice.MockTagService{}
			mockTagService.On("CreateTag", mock.Anything, "react").Return((*domain.Tag)(nil), tc.err)
			discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

			handler := tag2.NewTagHandlerV1(mockTagService, discardLogger)

			h := chi.NewRouter(discardLogger, handler, "")
			w := httptest.NewRecorder()

			jsonBody, err := json.Marshal(tag2.V1CreateTagRequest{Title: "react"})
			require.NoError(t, err)
			req := httptest.NewRequest(httpgo.MethodPost, "/tags/", bytes.NewReader(jsonBody))
			req.Header.Set("Content-Type", "application/json")

			//Act
			h.ServeHTTP(w, req)

			//Assert
			assert.Equal(t, tc.expected, w.Code)
			mockTagService.AssertExpectations(t)
		})
	}
}
