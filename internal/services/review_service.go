package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"konnection/backend/internal/models"
	"konnection/backend/internal/repository"
	"konnection/backend/internal/utils"
)

// ReviewResponse is a review joined with its room's region label.
type ReviewResponse struct {
	ReviewID  int64     `json:"reviewId"`
	RoomID    int64     `json:"roomId"`
	Region    string    `json:"roomAddressGuDong"`
	Name      string    `json:"name"`
	Reviewed  bool      `json:"reviewed"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateReviewInput carries the fields accepted when posting a review.
type CreateReviewInput struct {
	RoomID   int64
	Name     string
	Reviewed bool
	Content  string
}

// UpdateReviewInput is a patch: nil fields leave the stored value alone.
type UpdateReviewInput struct {
	Name     *string
	Reviewed *bool
	Content  *string
}

// IReviewService manages room reviews.
type IReviewService interface {
	Create(ctx context.Context, in CreateReviewInput) (*ReviewResponse, error)
	Update(ctx context.Context, id int64, in UpdateReviewInput) (*ReviewResponse, error)
	Delete(ctx context.Context, id int64) error
	ListByName(ctx context.Context, name string, roomID *int64) ([]ReviewResponse, error)
}

// ReviewService implements IReviewService.
type ReviewService struct {
	reviews repository.ReviewRepository
	rooms   repository.RoomRepository
	logger  *zap.Logger
}

func NewReviewService(reviews repository.ReviewRepository, rooms repository.RoomRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, rooms: rooms, logger: logger}
}

func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (*ReviewResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrReviewNameRequired
	}

	room, err := s.rooms.FindByID(ctx, in.RoomID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		RoomID:   in.RoomID,
		Name:     in.Name,
		Reviewed: in.Reviewed,
		Content:  in.Content,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info("review created", zap.Int64("review_id", review.ID), zap.Int64("room_id", in.RoomID))
	return toReviewResponse(review, room.Address), nil
}

func (s *ReviewService) Update(ctx context.Context, id int64, in UpdateReviewInput) (*ReviewResponse, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		review.Name = *in.Name
	}
	if in.Reviewed != nil {
		review.Reviewed = *in.Reviewed
	}
	if in.Content != nil {
		review.Content = *in.Content
	}

	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review %d: %w", id, err)
	}
	return toReviewResponse(review, s.roomAddress(ctx, review.RoomID)), nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	err := s.reviews.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrReviewNotFound
	}
	return err
}

func (s *ReviewService) ListByName(ctx context.Context, name string, roomID *int64) ([]ReviewResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrReviewNameRequired
	}

	reviews, err := s.reviews.FindByName(ctx, name, roomID)
	if err != nil {
		return nil, err
	}

	// Reviews for the same room share a lookup.
	addresses := map[int64]string{}
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		addr, ok := addresses[review.RoomID]
		if !ok {
			addr = s.roomAddress(ctx, review.RoomID)
			addresses[review.RoomID] = addr
		}
		out = append(out, *toReviewResponse(review, addr))
	}
	return out, nil
}

func (s *ReviewService) roomAddress(ctx context.Context, roomID int64) string {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return ""
	}
	return room.Address
}

func toReviewResponse(review *models.Review, roomAddress string) *ReviewResponse {
	return &ReviewResponse{
		ReviewID:  review.ID,
		RoomID:    review.RoomID,
		Region:    utils.ExtractRegion(roomAddress),
		Name:      review.Name,
		Reviewed:  review.Reviewed,
		Content:   review.Content,
		CreatedAt: review.CreatedAt,
	}
}
