package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"konnection/backend/internal/models"
	"konnection/backend/internal/services"
)

// --- Mocks ---

// MockRoomService
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) Create(ctx context.Context, in services.CreateRoomInput) (*models.Room, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Update(ctx context.Context, id int64, in services.UpdateRoomInput) (*models.Room, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) List(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

// MockRoomQueryService
type MockRoomQueryService struct {
	mock.Mock
}

func (m *MockRoomQueryService) Search(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

// MockReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, in services.CreateReviewInput) (*services.ReviewResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, id int64, in services.UpdateReviewInput) (*services.ReviewResponse, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewService) ListByName(ctx context.Context, name string, roomID *int64) ([]services.ReviewResponse, error) {
	args := m.Called(ctx, name, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ReviewResponse), args.Error(1)
}

// MockChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Translate(ctx context.Context, language, message string) (string, error) {
	args := m.Called(ctx, language, message)
	return args.String(0), args.Error(1)
}

func (m *MockChatService) Chat(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
