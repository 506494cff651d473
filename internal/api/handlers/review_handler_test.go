package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"konnection/backend/internal/api/handlers"
	"konnection/backend/internal/services"
)

func newReviewRouter(reviewSvc *MockReviewService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewReviewHandler(reviewSvc)
	r := gin.New()
	r.POST("/api/v1/reviews", handler.CreateReview)
	r.GET("/api/v1/reviews", handler.ListReviews)
	r.PUT("/api/v1/reviews/:reviewId", handler.UpdateReview)
	r.DELETE("/api/v1/reviews/:reviewId", handler.DeleteReview)
	return r
}

func TestReviewHandler_CreateReview_Success(t *testing.T) {
	reviewSvc := new(MockReviewService)
	r := newReviewRouter(reviewSvc)

	resp := &services.ReviewResponse{
		ReviewID:  1,
		RoomID:    7,
		Region:    "마포구 서교동",
		Name:      "jihye",
		Reviewed:  true,
		Content:   "creaky floors",
		CreatedAt: time.Now().UTC(),
	}
	reviewSvc.On("Create", mock.Anything, services.CreateReviewInput{
		RoomID:   7,
		Name:     "jihye",
		Reviewed: true,
		Content:  "creaky floors",
	}).Return(resp, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"roomId":   7,
		"name":     "jihye",
		"reviewed": true,
		"content":  "creaky floors",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "마포구 서교동", got["roomAddressGuDong"])
	reviewSvc.AssertExpectations(t)
}

func TestReviewHandler_CreateReview_RoomMissing(t *testing.T) {
	reviewSvc := new(MockReviewService)
	r := newReviewRouter(reviewSvc)

	reviewSvc.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrRoomNotFound)

	body, _ := json.Marshal(map[string]interface{}{"roomId": 99, "name": "jihye"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	reviewSvc.AssertExpectations(t)
}

func TestReviewHandler_CreateReview_BadBody(t *testing.T) {
	reviewSvc := new(MockReviewService)
	r := newReviewRouter(reviewSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/reviews", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	reviewSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewHandler_UpdateReview_Patch(t *testing.T) {
	reviewSvc := new(MockReviewService)
	r := newReviewRouter(reviewSvc)

	updated := &services.ReviewResponse{ReviewID: 4, Content: "fixed now"}
	reviewSvc.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(in services.UpdateReviewInput) bool {
		return in.Name == nil && in.Reviewed == nil && in.Content != nil && *in.Content == "fixed now"
	})).Return(updated, nil)

	body, _ := json.Marshal(map[string]interface{}{"content": "fixed now"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/v1/reviews/4", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	reviewSvc.AssertExpectations(t)
}

func TestReviewHandler_DeleteReview_NotFound(t *testing.T) {
	reviewSvc := new(MockReviewService)
	r := newReviewRouter(reviewSvc)

	reviewSvc.On("Delete", mock.Anything, int64(8)).Return(services.ErrReviewNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/v1/reviews/8", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	reviewSvc.AssertExpectations(t)
}

func TestReviewHandler_ListReviews_ByNameAndRoom(t *testing.T) {
	reviewSvc := new(MockReviewService)
	r := newReviewRouter(reviewSvc)

	roomID := int64(7)
	reviews := []services.ReviewResponse{{ReviewID: 2, RoomID: 7, Name: "jihye"}}
	reviewSvc.On("ListByName", mock.Anything, "jihye", &roomID).Return(reviews, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reviews?name=jihye&roomId=7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []services.ReviewResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	reviewSvc.AssertExpectations(t)
}

func TestReviewHandler_ListReviews_NameRequired(t *testing.T) {
	reviewSvc := new(MockReviewService)
	r := newReviewRouter(reviewSvc)

	reviewSvc.On("ListByName", mock.Anything, "", (*int64)(nil)).Return(nil, services.ErrReviewNameRequired)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reviews", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	reviewSvc.AssertExpectations(t)
}

func TestReviewHandler_ListReviews_BadRoomID(t *testing.T) {
	reviewSvc := new(MockReviewService)
	r := newReviewRouter(reviewSvc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reviews?name=jihye&roomId=abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	reviewSvc.AssertNotCalled(t, "ListByName", mock.Anything, mock.Anything, mock.Anything)
}
