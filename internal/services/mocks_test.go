package services

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"konnection/backend/internal/geo"
	"konnection/backend/internal/storage"
)

// MockGeocoder implements geo.IGeocoder.
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) *geo.Coord {
	args := m.Called(ctx, address)
	if coord, ok := args.Get(0).(*geo.Coord); ok {
		return coord
	}
	return nil
}

// MockImageStorage implements storage.IImageStorage.
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Upload(ctx context.Context, ownerKey string, files []storage.File) ([]string, error) {
	args := m.Called(ctx, ownerKey, files)
	if urls, ok := args.Get(0).([]string); ok {
		return urls, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockImageStorage) Delete(ctx context.Context, url string) {
	m.Called(ctx, url)
}

func (m *MockImageStorage) ObjectKey(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}

func (m *MockImageStorage) Fetch(ctx context.Context, key string) ([]byte, string, error) {
	args := m.Called(ctx, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *MockImageStorage) Replace(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

// fakeUploads is a canned Upload implementation returning one URL per
// non-empty file, derived from the owner key and file name.
func fakeUploads(ownerKey string, files []storage.File) []string {
	urls := []string{}
	for _, f := range files {
		if len(f.Data) == 0 {
			continue
		}
		urls = append(urls, fmt.Sprintf("https://img.test/bucket/memo-images/%s/%s", ownerKey, f.Name))
	}
	return urls
}

// MockEnqueuer implements tasks.Enqueuer.
type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueImageNormalize(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}
