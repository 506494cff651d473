package repository

import (
	"context"
	"errors"

	"konnection/backend/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// RoomRepository persists rooms. Create assigns the id and timestamps; Save
// replaces the whole document and bumps UpdatedAt.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	Save(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Room, error)
	FindAll(ctx context.Context) ([]models.Room, error)
	// Search returns rooms matching the filter, newest first.
	Search(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
	// NextImageID allocates an id for an embedded room image.
	NextImageID(ctx context.Context) (int64, error)
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Save(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	// FindByName returns the author's reviews, newest first, optionally
	// narrowed to one room.
	FindByName(ctx context.Context, name string, roomID *int64) ([]models.Review, error)
}
