package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"konnection/backend/internal/models"
)

// MemoryRoomRepository is an in-memory RoomRepository used by tests and local
// development. Returned rooms are deep copies.
type MemoryRoomRepository struct {
	mu          sync.RWMutex
	rooms       map[int64]*models.Room
	nextRoomID  int64
	nextImageID int64
}

// NewMemoryRoomRepository creates an empty in-memory room repository.
func NewMemoryRoomRepository() *MemoryRoomRepository {
	return &MemoryRoomRepository{rooms: map[int64]*models.Room{}}
}

func (r *MemoryRoomRepository) Create(_ context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextRoomID++
	room.ID = r.nextRoomID
	now := time.Now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now
	if room.Options == nil {
		room.Options = []string{}
	}
	if room.SecurityFacilities == nil {
		room.SecurityFacilities = []string{}
	}
	if room.Images == nil {
		room.Images = []models.RoomImage{}
	}
	r.rooms[room.ID] = room.Clone()
	return nil
}

func (r *MemoryRoomRepository) Save(_ context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.ID]; !ok {
		return ErrNotFound
	}
	room.UpdatedAt = time.Now().UTC()
	r.rooms[room.ID] = room.Clone()
	return nil
}

func (r *MemoryRoomRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(r.rooms, id)
	return nil
}

func (r *MemoryRoomRepository) FindByID(_ context.Context, id int64) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := room.Clone()
	sortImages(out)
	return out, nil
}

func (r *MemoryRoomRepository) FindAll(_ context.Context) ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := make([]models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out := room.Clone()
		sortImages(out)
		rooms = append(rooms, *out)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r *MemoryRoomRepository) Search(_ context.Context, filter models.RoomFilter) ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rooms := []models.Room{}
	for _, room := range r.rooms {
		if filter.Matches(room) {
			out := room.Clone()
			sortImages(out)
			rooms = append(rooms, *out)
		}
	}
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.After(rooms[j].CreatedAt)
		}
		return rooms[i].ID > rooms[j].ID
	})
	return rooms, nil
}

func (r *MemoryRoomRepository) NextImageID(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextImageID++
	return r.nextImageID, nil
}

// MemoryReviewRepository is an in-memory ReviewRepository for tests.
type MemoryReviewRepository struct {
	mu      sync.RWMutex
	reviews map[int64]*models.Review
	nextID  int64
}

// NewMemoryReviewRepository creates an empty in-memory review repository.
func NewMemoryReviewRepository() *MemoryReviewRepository {
	return &MemoryReviewRepository{reviews: map[int64]*models.Review{}}
}

func (r *MemoryReviewRepository) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	review.ID = r.nextID
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *MemoryReviewRepository) Save(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return ErrNotFound
	}
	review.UpdatedAt = time.Now().UTC()
	clone := *review
	r.reviews[review.ID] = &clone
	return nil
}

func (r *MemoryReviewRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *MemoryReviewRepository) FindByID(_ context.Context, id int64) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *review
	return &clone, nil
}

func (r *MemoryReviewRepository) FindByName(_ context.Context, name string, roomID *int64) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reviews := []models.Review{}
	for _, review := range r.reviews {
		if review.Name != name {
			continue
		}
		if roomID != nil && review.RoomID != *roomID {
			continue
		}
		reviews = append(reviews, *review)
	}
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID > reviews[j].ID
	})
	return reviews, nil
}
