package eventbroker

import (
	"context"
	"tagboard/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishTagCreated(ctx context.Context, event domain.TagCreatedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
