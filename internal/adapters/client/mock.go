package client

import (
	"context"
	"tagboard/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockTagsAPI is a mock implementation of port.TagsAPI
type MockTagsAPI struct {
	mock.Mock
}

func NewMockTagsAPI() *MockTagsAPI {
	return &MockTagsAPI{}
}

func (m *MockTagsAPI) ListTags(ctx context.Context, page int, title string) (domain.TagPage, error) {
	args := m.Called(ctx, page, title)
	return args.Get(0).(domain.TagPage), args.Error(1)
}

func (m *MockTagsAPI) CreateTag(ctx context.Context, title string) (*domain.Tag, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagsAPI) ExportTags(ctx context.Context, title string) (*domain.Export, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(*domain.Export), args.Error(1)
}
