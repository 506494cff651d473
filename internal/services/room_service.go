package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"konnection/backend/internal/cache"
	"konnection/backend/internal/geo"
	"konnection/backend/internal/models"
	"konnection/backend/internal/repository"
	"konnection/backend/internal/storage"
	"konnection/backend/internal/tasks"
)

// CreateRoomInput carries the fields accepted when registering a room.
// Pointer fields are optional.
type CreateRoomInput struct {
	Address            string
	MonthlyRent        int
	Deposit            int
	MaintenanceFee     *int
	RoomType           models.RoomType
	AreaM2             *float64
	RoomCount          *int
	BathroomCount      *int
	Direction          *models.Direction
	HeatingType        *models.HeatingType
	EntranceType       *models.EntranceType
	BuildingUse        *string
	ApprovalDate       *string
	Floor              *int
	TotalFloors        *int
	ParkingAvailable   *bool
	TotalParkingSpots  *int
	AvailableFrom      *string
	Description        *string
	Options            []string
	SecurityFacilities []string
	LandlordName       *string
	LandlordPhone      *string
	BusinessRegNo      *string
	UploaderID         string
	Images             []storage.File
}

// UpdateRoomInput is a patch: nil fields leave the stored value alone.
// Options and SecurityFacilities, when present, replace the stored set whole.
type UpdateRoomInput struct {
	Address            *string
	MonthlyRent        *int
	Deposit            *int
	MaintenanceFee     *int
	RoomType           *models.RoomType
	AreaM2             *float64
	RoomCount          *int
	BathroomCount      *int
	Direction          *models.Direction
	HeatingType        *models.HeatingType
	EntranceType       *models.EntranceType
	BuildingUse        *string
	ApprovalDate       *string
	Floor              *int
	TotalFloors        *int
	ParkingAvailable   *bool
	TotalParkingSpots  *int
	AvailableFrom      *string
	Description        *string
	Options            *[]string
	SecurityFacilities *[]string
	LandlordName       *string
	LandlordPhone      *string
	BusinessRegNo      *string
	UploaderID         string
	DeleteImageIDs     []int64
	NewImages          []storage.File
}

// IRoomService manages the room catalog.
type IRoomService interface {
	Create(ctx context.Context, in CreateRoomInput) (*models.Room, error)
	Update(ctx context.Context, id int64, in UpdateRoomInput) (*models.Room, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
}

// RoomService implements IRoomService.
type RoomService struct {
	rooms    repository.RoomRepository
	store    storage.IImageStorage
	geocoder geo.IGeocoder
	cache    *cache.SearchCache
	enqueuer tasks.Enqueuer
	logger   *zap.Logger
}

// NewRoomService creates the room service. cache and enqueuer may be nil.
func NewRoomService(
	rooms repository.RoomRepository,
	store storage.IImageStorage,
	geocoder geo.IGeocoder,
	searchCache *cache.SearchCache,
	enqueuer tasks.Enqueuer,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		rooms:    rooms,
		store:    store,
		geocoder: geocoder,
		cache:    searchCache,
		enqueuer: enqueuer,
		logger:   logger,
	}
}

func (s *RoomService) Create(ctx context.Context, in CreateRoomInput) (*models.Room, error) {
	if strings.TrimSpace(in.Address) == "" {
		return nil, ErrAddressRequired
	}

	room := &models.Room{
		Address:            in.Address,
		MonthlyRent:        in.MonthlyRent,
		Deposit:            in.Deposit,
		MaintenanceFee:     in.MaintenanceFee,
		RoomType:           in.RoomType,
		AreaM2:             in.AreaM2,
		RoomCount:          in.RoomCount,
		BathroomCount:      in.BathroomCount,
		Direction:          in.Direction,
		HeatingType:        in.HeatingType,
		EntranceType:       in.EntranceType,
		BuildingUse:        in.BuildingUse,
		ApprovalDate:       in.ApprovalDate,
		Floor:              in.Floor,
		TotalFloors:        in.TotalFloors,
		ParkingAvailable:   in.ParkingAvailable,
		TotalParkingSpots:  in.TotalParkingSpots,
		AvailableFrom:      in.AvailableFrom,
		Description:        in.Description,
		Options:            in.Options,
		SecurityFacilities: in.SecurityFacilities,
		LandlordName:       in.LandlordName,
		LandlordPhone:      in.LandlordPhone,
		BusinessRegNo:      in.BusinessRegNo,
	}
	if in.RoomType == "" {
		room.RoomType = models.RoomTypeOneRoom
	}
	if uploader := strings.TrimSpace(in.UploaderID); uploader != "" {
		room.UploaderID = &uploader
	}

	// Geocoding is best-effort: an unresolvable address leaves both
	// coordinates unset.
	if coord := s.geocoder.Geocode(ctx, in.Address); coord != nil {
		room.Latitude = &coord.Latitude
		room.Longitude = &coord.Longitude
	}

	// Persist first so the room id is available for the uploader key.
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	if len(in.Images) > 0 {
		if err := s.attachImages(ctx, room, in.Images, true); err != nil {
			return nil, err
		}
		if err := s.rooms.Save(ctx, room); err != nil {
			return nil, fmt.Errorf("failed to save room images: %w", err)
		}
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("room created", zap.Int64("room_id", room.ID), zap.Int("images", len(room.Images)))
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id int64, in UpdateRoomInput) (*models.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	if in.Address != nil && strings.TrimSpace(*in.Address) != "" {
		room.Address = *in.Address
		// Re-geocode on address change; an unresolvable new address
		// clears both coordinates rather than keeping stale ones.
		if coord := s.geocoder.Geocode(ctx, room.Address); coord != nil {
			room.Latitude = &coord.Latitude
			room.Longitude = &coord.Longitude
		} else {
			room.Latitude = nil
			room.Longitude = nil
		}
	}
	if in.MonthlyRent != nil {
		room.MonthlyRent = *in.MonthlyRent
	}
	if in.Deposit != nil {
		room.Deposit = *in.Deposit
	}
	if in.MaintenanceFee != nil {
		room.MaintenanceFee = in.MaintenanceFee
	}
	if in.RoomType != nil {
		room.RoomType = *in.RoomType
	}
	if in.AreaM2 != nil {
		room.AreaM2 = in.AreaM2
	}
	if in.RoomCount != nil {
		room.RoomCount = in.RoomCount
	}
	if in.BathroomCount != nil {
		room.BathroomCount = in.BathroomCount
	}
	if in.Direction != nil {
		room.Direction = in.Direction
	}
	if in.HeatingType != nil {
		room.HeatingType = in.HeatingType
	}
	if in.EntranceType != nil {
		room.EntranceType = in.EntranceType
	}
	if in.BuildingUse != nil {
		room.BuildingUse = in.BuildingUse
	}
	if in.ApprovalDate != nil {
		room.ApprovalDate = in.ApprovalDate
	}
	if in.Floor != nil {
		room.Floor = in.Floor
	}
	if in.TotalFloors != nil {
		room.TotalFloors = in.TotalFloors
	}
	if in.ParkingAvailable != nil {
		room.ParkingAvailable = in.ParkingAvailable
	}
	if in.TotalParkingSpots != nil {
		room.TotalParkingSpots = in.TotalParkingSpots
	}
	if in.AvailableFrom != nil {
		room.AvailableFrom = in.AvailableFrom
	}
	if in.Description != nil {
		room.Description = in.Description
	}
	if in.Options != nil {
		room.Options = append([]string{}, (*in.Options)...)
	}
	if in.SecurityFacilities != nil {
		room.SecurityFacilities = append([]string{}, (*in.SecurityFacilities)...)
	}
	if in.LandlordName != nil {
		room.LandlordName = in.LandlordName
	}
	if in.LandlordPhone != nil {
		room.LandlordPhone = in.LandlordPhone
	}
	if in.BusinessRegNo != nil {
		room.BusinessRegNo = in.BusinessRegNo
	}
	if uploader := strings.TrimSpace(in.UploaderID); uploader != "" {
		room.UploaderID = &uploader
	}

	for _, imageID := range in.DeleteImageIDs {
		idx := -1
		for i, img := range room.Images {
			if img.ID == imageID {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Ids belonging to other rooms are skipped silently.
			continue
		}
		s.store.Delete(ctx, room.Images[idx].URL)
		room.Images = append(room.Images[:idx], room.Images[idx+1:]...)
	}

	if len(in.NewImages) > 0 {
		if err := s.attachImages(ctx, room, in.NewImages, false); err != nil {
			return nil, err
		}
	}

	if err := s.rooms.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room %d: %w", id, err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("room updated", zap.Int64("room_id", room.ID))
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, id int64) error {
	room, err := s.rooms.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRoomNotFound
	}
	if err != nil {
		return err
	}

	for _, img := range room.Images {
		s.store.Delete(ctx, img.URL)
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("room deleted", zap.Int64("room_id", id))
	return nil
}

func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	return room, err
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.rooms.FindAll(ctx)
}

// attachImages uploads files and appends the resulting image records.
// On initial upload the first image becomes the thumbnail; images added later
// never do. Sort order continues from the current image count.
func (s *RoomService) attachImages(ctx context.Context, room *models.Room, files []storage.File, initial bool) error {
	ownerKey := uploaderKey(room)
	urls, err := s.store.Upload(ctx, ownerKey, files)
	if err != nil {
		return fmt.Errorf("failed to upload images for room %d: %w", room.ID, err)
	}

	startOrder := len(room.Images)
	for i, url := range urls {
		imageID, err := s.rooms.NextImageID(ctx)
		if err != nil {
			return err
		}
		room.Images = append(room.Images, models.RoomImage{
			ID:        imageID,
			RoomID:    room.ID,
			URL:       url,
			Thumbnail: initial && i == 0,
			SortOrder: startOrder + i,
		})
		if s.enqueuer != nil {
			if err := s.enqueuer.EnqueueImageNormalize(ctx, url); err != nil {
				s.logger.Warn("failed to enqueue image normalization",
					zap.String("url", url), zap.Error(err))
			}
		}
	}
	return nil
}

// uploaderKey groups stored objects by uploader, falling back to the room id.
func uploaderKey(room *models.Room) string {
	if room.UploaderID != nil && strings.TrimSpace(*room.UploaderID) != "" {
		return *room.UploaderID
	}
	return fmt.Sprintf("room-%d", room.ID)
}
