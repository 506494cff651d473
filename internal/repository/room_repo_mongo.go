package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"konnection/backend/internal/db"
	"konnection/backend/internal/models"
)

const (
	roomsCollection   = "rooms"
	roomsSequence     = "rooms"
	roomImageSequence = "room_images"
)

// mongoRoomRepository implements RoomRepository on MongoDB.
type mongoRoomRepository struct {
	database *mongo.Database
}

// NewMongoRoomRepository creates the MongoDB-backed room repository.
func NewMongoRoomRepository(database *mongo.Database) RoomRepository {
	return &mongoRoomRepository{database: database}
}

func (r *mongoRoomRepository) collection() *mongo.Collection {
	return r.database.Collection(roomsCollection)
}

func (r *mongoRoomRepository) Create(ctx context.Context, room *models.Room) error {
	id, err := db.NextSequence(ctx, r.database, roomsSequence)
	if err != nil {
		return err
	}
	room.ID = id
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

	return db.Try(func() error {
		_, err := r.collection().InsertOne(ctx, room)
		return err
	})
}

func (r *mongoRoomRepository) Save(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = time.Now().UTC()
	res, err := r.collection().ReplaceOne(ctx, bson.M{"_id": room.ID}, room)
	if err != nil {
		return fmt.Errorf("failed to save room %d: %w", room.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRoomRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRoomRepository) FindByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find room %d: %w", id, err)
	}
	sortImages(&room)
	return &room, nil
}

func (r *mongoRoomRepository) FindAll(ctx context.Context) ([]models.Room, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *mongoRoomRepository) Search(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, searchQuery(filter), opts)
}

func (r *mongoRoomRepository) NextImageID(ctx context.Context) (int64, error) {
	return db.NextSequence(ctx, r.database, roomImageSequence)
}

func (r *mongoRoomRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Room, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection().Find(ctx, query, opts)
	} else {
		cursor, err = r.collection().Find(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	for i := range rooms {
		sortImages(&rooms[i])
	}
	return rooms, nil
}

// searchQuery translates a filter into a Mongo conjunction. Inactive fields
// contribute no clause, mirroring models.RoomFilter.Matches.
func searchQuery(f models.RoomFilter) bson.M {
	query := bson.M{}

	if loc := strings.TrimSpace(f.Location); loc != "" {
		query["address"] = primitive.Regex{Pattern: regexp.QuoteMeta(loc), Options: "i"}
	}

	rent := bson.M{}
	if f.MonthlyMin != nil {
		rent["$gte"] = *f.MonthlyMin
	}
	if f.MonthlyMax != nil {
		rent["$lte"] = *f.MonthlyMax
	}
	if len(rent) > 0 {
		query["monthly_rent"] = rent
	}

	deposit := bson.M{}
	if f.DepositMin != nil {
		deposit["$gte"] = *f.DepositMin
	}
	if f.DepositMax != nil {
		deposit["$lte"] = *f.DepositMax
	}
	if len(deposit) > 0 {
		query["deposit"] = deposit
	}

	switch f.Floor {
	case models.FloorOne:
		query["floor"] = 1
	case models.FloorTwo:
		query["floor"] = 2
	case models.FloorThreePlus:
		query["floor"] = bson.M{"$gte": 3}
	}

	if f.ParkingOnly {
		query["parking_available"] = true
	}

	return query
}

func sortImages(room *models.Room) {
	sort.SliceStable(room.Images, func(i, j int) bool {
		return room.Images[i].SortOrder < room.Images[j].SortOrder
	})
}
