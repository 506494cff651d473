package models

import "time"

// Review is visit feedback left against a room.
type Review struct {
	ID        int64     `bson:"_id" json:"reviewId"`
	RoomID    int64     `bson:"room_id" json:"roomId"`
	Name      string    `bson:"name" json:"name"`
	Reviewed  bool      `bson:"reviewed" json:"reviewed"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
