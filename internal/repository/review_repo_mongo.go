package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"konnection/backend/internal/db"
	"konnection/backend/internal/models"
)

const (
	reviewsCollection = "reviews"
	reviewsSequence   = "reviews"
)

// mongoReviewRepository implements ReviewRepository on MongoDB.
type mongoReviewRepository struct {
	database *mongo.Database
}

// NewMongoReviewRepository creates the MongoDB-backed review repository.
func NewMongoReviewRepository(database *mongo.Database) ReviewRepository {
	return &mongoReviewRepository{database: database}
}

func (r *mongoReviewRepository) collection() *mongo.Collection {
	return r.database.Collection(reviewsCollection)
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *models.Review) error {
	id, err := db.NextSequence(ctx, r.database, reviewsSequence)
	if err != nil {
		return err
	}
	review.ID = id
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	return db.Try(func() error {
		_, err := r.collection().InsertOne(ctx, review)
		return err
	})
}

func (r *mongoReviewRepository) Save(ctx context.Context, review *models.Review) error {
	review.UpdatedAt = time.Now().UTC()
	res, err := r.collection().ReplaceOne(ctx, bson.M{"_id": review.ID}, review)
	if err != nil {
		return fmt.Errorf("failed to save review %d: %w", review.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoReviewRepository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review %d: %w", id, err)
	}
	return &review, nil
}

func (r *mongoReviewRepository) FindByName(ctx context.Context, name string, roomID *int64) ([]models.Review, error) {
	query := bson.M{"name": name}
	if roomID != nil {
		query["room_id"] = *roomID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
