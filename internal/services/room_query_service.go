package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"konnection/backend/internal/cache"
	"konnection/backend/internal/models"
	"konnection/backend/internal/repository"
)

// IRoomQueryService answers filtered room searches.
type IRoomQueryService interface {
	Search(ctx context.Context, filter models.RoomFilter) ([]models.Room, error)
}

// RoomQueryService implements IRoomQueryService with a Redis result cache.
type RoomQueryService struct {
	rooms  repository.RoomRepository
	cache  *cache.SearchCache
	logger *zap.Logger
}

// NewRoomQueryService creates the search service. cache may be nil.
func NewRoomQueryService(rooms repository.RoomRepository, searchCache *cache.SearchCache, logger *zap.Logger) *RoomQueryService {
	return &RoomQueryService{rooms: rooms, cache: searchCache, logger: logger}
}

func (s *RoomQueryService) Search(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	key := filter.CacheKey()
	if data, ok := s.cache.Get(ctx, key); ok {
		var rooms []models.Room
		if err := json.Unmarshal(data, &rooms); err == nil {
			return rooms, nil
		}
		s.logger.Warn("discarding unreadable cached search result", zap.String("key", key))
	}

	rooms, err := s.rooms.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rooms); err == nil {
		s.cache.Set(ctx, key, data)
	}
	return rooms, nil
}
