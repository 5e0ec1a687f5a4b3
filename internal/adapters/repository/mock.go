package repository

import (
	"context"
	"tagboard/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockTagRepository struct {
	mock.Mock
}

func NewMockTagRepository() *MockTagRepository {
	return &MockTagRepository{}
}

func (m *MockTagRepository) Create(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).(*domain.Tag), args.Error(1)
}

func (m *MockTagRepository) List(ctx context.Context, title string, offset, limit int) ([]domain.Tag, int, error) {
	args := m.Called(ctx, title, offset, limit)
	return args.Get(0).([]domain.Tag), args.Int(1), args.Error(2)
}

func (m *MockTagRepository) All(ctx context.Context, title string) ([]domain.Tag, error) {
	args := m.Called(ctx, title)
	return args.Get(0).([]domain.Tag), args.Error(1)
}
