package tag

import (
	"context"
	"tagboard/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

// MockTagService is a mock implementation of TagService
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) CreateTag(ctx context.Context, title string) (*domain.Tag, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagService) ListTags(ctx context.Context, title string, page, perPage int) (domain.TagPage, error) {
	args := m.Called(ctx, title, page, perPage)
	return args.Get(0).(domain.TagPage), args.Error(1)
}

func (m *MockTagService) ExportTags(ctx context.Context, title string) (*domain.Export, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(*domain.Export), args.Error(1)
}
