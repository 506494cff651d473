package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"konnection/backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestSearchQuery_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, searchQuery(models.RoomFilter{}))
}

func TestSearchQuery_Location(t *testing.T) {
	q := searchQuery(models.RoomFilter{Location: " 강남구 "})
	re, ok := q["address"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, "강남구", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestSearchQuery_LocationEscaped(t *testing.T) {
	q := searchQuery(models.RoomFilter{Location: "1-2 (a)"})
	re := q["address"].(primitive.Regex)
	assert.Equal(t, `1-2 \(a\)`, re.Pattern, "regex metacharacters must be literal")
}

func TestSearchQuery_Ranges(t *testing.T) {
	q := searchQuery(models.RoomFilter{
		MonthlyMin: intPtr(30),
		MonthlyMax: intPtr(60),
		DepositMin: intPtr(100),
	})
	assert.Equal(t, bson.M{"$gte": 30, "$lte": 60}, q["monthly_rent"])
	assert.Equal(t, bson.M{"$gte": 100}, q["deposit"])
}

func TestSearchQuery_Floor(t *testing.T) {
	assert.Equal(t, 1, searchQuery(models.RoomFilter{Floor: models.FloorOne})["floor"])
	assert.Equal(t, 2, searchQuery(models.RoomFilter{Floor: models.FloorTwo})["floor"])
	assert.Equal(t, bson.M{"$gte": 3}, searchQuery(models.RoomFilter{Floor: models.FloorThreePlus})["floor"])
	_, present := searchQuery(models.RoomFilter{Floor: models.FloorAny})["floor"]
	assert.False(t, present)
}

func TestSearchQuery_ParkingOnly(t *testing.T) {
	assert.Equal(t, true, searchQuery(models.RoomFilter{ParkingOnly: true})["parking_available"])
	_, present := searchQuery(models.RoomFilter{})["parking_available"]
	assert.False(t, present)
}
