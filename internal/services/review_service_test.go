package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"konnection/backend/internal/models"
	"konnection/backend/internal/repository"
)

func int64Ptr(v int64) *int64 { return &v }

func newReviewService(t *testing.T) (*ReviewService, *repository.MemoryRoomRepository, *repository.MemoryReviewRepository) {
	t.Helper()
	rooms := repository.NewMemoryRoomRepository()
	reviews := repository.NewMemoryReviewRepository()
	return NewReviewService(reviews, rooms, zap.NewNop()), rooms, reviews
}

func seedRoom(t *testing.T, rooms *repository.MemoryRoomRepository, address string) *models.Room {
	t.Helper()
	room := &models.Room{Address: address, MonthlyRent: 50, Deposit: 500, RoomType: models.RoomTypeOneRoom}
	require.NoError(t, rooms.Create(context.Background(), room))
	return room
}

func TestCreateReview(t *testing.T) {
	svc, rooms, _ := newReviewService(t)
	room := seedRoom(t, rooms, "서울특별시 강남구 테헤란로 123")

	resp, err := svc.Create(context.Background(), CreateReviewInput{
		RoomID:   room.ID,
		Name:     "민지",
		Reviewed: true,
		Content:  "깨끗하고 조용해요",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ReviewID)
	assert.Equal(t, room.ID, resp.RoomID)
	assert.Equal(t, "서울특별시 강남구", resp.Region)
	assert.Equal(t, "민지", resp.Name)
	assert.True(t, resp.Reviewed)
}

func TestCreateReview_RoomMustExist(t *testing.T) {
	svc, _, _ := newReviewService(t)
	_, err := svc.Create(context.Background(), CreateReviewInput{RoomID: 999, Name: "민지"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateReview_NameRequired(t *testing.T) {
	svc, rooms, _ := newReviewService(t)
	room := seedRoom(t, rooms, "somewhere")
	_, err := svc.Create(context.Background(), CreateReviewInput{RoomID: room.ID, Name: " "})
	assert.ErrorIs(t, err, ErrReviewNameRequired)
}

func TestUpdateReview_Patch(t *testing.T) {
	svc, rooms, _ := newReviewService(t)
	room := seedRoom(t, rooms, "somewhere")

	created, err := svc.Create(context.Background(), CreateReviewInput{
		RoomID:  room.ID,
		Name:    "민지",
		Content: "original",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ReviewID, UpdateReviewInput{
		Content: strPtr("edited"),
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, "민지", updated.Name, "absent fields stay put")
}

func TestUpdateReview_NotFound(t *testing.T) {
	svc, _, _ := newReviewService(t)
	_, err := svc.Update(context.Background(), 999, UpdateReviewInput{})
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestDeleteReview(t *testing.T) {
	svc, rooms, reviews := newReviewService(t)
	room := seedRoom(t, rooms, "somewhere")
	created, err := svc.Create(context.Background(), CreateReviewInput{RoomID: room.ID, Name: "민지"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ReviewID))
	_, err = reviews.FindByID(context.Background(), created.ReviewID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ReviewID), ErrReviewNotFound)
}

func TestListByName(t *testing.T) {
	svc, rooms, reviews := newReviewService(t)
	roomA := seedRoom(t, rooms, "서울특별시 강남구 테헤란로 123")
	roomB := seedRoom(t, rooms, "경기도 성남시 분당로 50")

	base := time.Now().UTC()
	for i, r := range []struct {
		roomID int64
		name   string
	}{
		{roomA.ID, "민지"},
		{roomB.ID, "민지"},
		{roomA.ID, "다른사람"},
	} {
		review := &models.Review{RoomID: r.roomID, Name: r.name, Content: "ok"}
		require.NoError(t, reviews.Create(context.Background(), review))
		review.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, reviews.Save(context.Background(), review))
	}

	out, err := svc.ListByName(context.Background(), "민지", nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, roomB.ID, out[0].RoomID, "newest first")
	assert.Equal(t, "경기도 성남시", out[0].Region)
	assert.Equal(t, "서울특별시 강남구", out[1].Region)

	out, err = svc.ListByName(context.Background(), "민지", int64Ptr(roomA.ID))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, roomA.ID, out[0].RoomID)
}

func TestListByName_NameRequired(t *testing.T) {
	svc, _, _ := newReviewService(t)
	_, err := svc.ListByName(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrReviewNameRequired)
}

func TestListByName_DeletedRoomYieldsEmptyRegion(t *testing.T) {
	svc, rooms, _ := newReviewService(t)
	room := seedRoom(t, rooms, "서울특별시 강남구 테헤란로 123")
	_, err := svc.Create(context.Background(), CreateReviewInput{RoomID: room.ID, Name: "민지"})
	require.NoError(t, err)

	require.NoError(t, rooms.Delete(context.Background(), room.ID))

	out, err := svc.ListByName(context.Background(), "민지", nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Region)
}
