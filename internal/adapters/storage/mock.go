package storage

import (
	"context"
	"io"
	"tagboard/internal/core/domain"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) PresignedGetURL(ctx context.Context, key string) (string, *time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(*time.Time), args.Error(2)
}

func (m *MockStorage) ListObjects(ctx context.Context, prefix string) ([]domain.StoredExport, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]domain.StoredExport), args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
