package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"konnection/backend/internal/config"
	"konnection/backend/internal/utils"
)

const (
	imageKeyPrefix = "memo-images"
	keyTimeLayout  = "2006-01-02_15:04:05"
)

// File is an uploaded file's name and content.
type File struct {
	Name string
	Data []byte
}

// IImageStorage stores room images in an S3-compatible object store.
type IImageStorage interface {
	// Upload stores every non-empty file under the owner's key prefix and
	// returns their public URLs in input order.
	Upload(ctx context.Context, ownerKey string, files []File) ([]string, error)
	// Delete removes the object behind a public URL. Foreign URLs and
	// storage errors are ignored; deletion is best-effort.
	Delete(ctx context.Context, url string)
	// ObjectKey maps a public URL back to its object key. ok is false for
	// URLs not served from this store.
	ObjectKey(url string) (key string, ok bool)
	// Fetch downloads an object by key, returning content and content type.
	Fetch(ctx context.Context, key string) ([]byte, string, error)
	// Replace overwrites an existing object in place.
	Replace(ctx context.Context, key string, data []byte, contentType string) error
}

// s3ImageStorage implements IImageStorage.
type s3ImageStorage struct {
	client *s3.Client
	bucket string
	domain string
	logger *zap.Logger
}

// NewS3ImageStorage creates the image store from application config.
func NewS3ImageStorage(cfg *config.Config, logger *zap.Logger) (IImageStorage, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(context.TODO(),
		aws_config.WithRegion(cfg.AwsRegion),
		aws_config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AwsAccessKeyID,
			cfg.AwsSecretAccessKey,
			"", // session token
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AwsS3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AwsS3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3ImageStorage{
		client: client,
		bucket: cfg.AwsS3Bucket,
		domain: strings.TrimSuffix(cfg.ImageDomain, "/"),
		logger: logger,
	}, nil
}

func (s *s3ImageStorage) Upload(ctx context.Context, ownerKey string, files []File) ([]string, error) {
	// One token per upload batch so a room's images group under one prefix.
	token := utils.RandomAlphanumeric(16)

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if len(file.Data) == 0 {
			continue
		}
		key := buildObjectKey(ownerKey, token, file.Name, time.Now())
		contentType := http.DetectContentType(file.Data)

		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(file.Data),
			ContentType: aws.String(contentType),
			ACL:         types.ObjectCannedACLPublicRead,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %w", key, err)
		}
		urls = append(urls, fmt.Sprintf("%s/%s/%s", s.domain, s.bucket, key))
	}
	return urls, nil
}

func (s *s3ImageStorage) Delete(ctx context.Context, url string) {
	key, ok := s.ObjectKey(url)
	if !ok {
		return
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Warn("failed to delete image object", zap.String("key", key), zap.Error(err))
	}
}

func (s *s3ImageStorage) ObjectKey(url string) (string, bool) {
	prefix := s.domain + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

func (s *s3ImageStorage) Fetch(ctx context.Context, key string) ([]byte, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch object %s: %w", key, err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(out.Body); err != nil {
		return nil, "", fmt.Errorf("failed to read object %s: %w", key, err)
	}
	return buf.Bytes(), aws.ToString(out.ContentType), nil
}

func (s *s3ImageStorage) Replace(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("failed to replace object %s: %w", key, err)
	}
	return nil
}

// buildObjectKey lays out keys as
// memo-images/<owner>/<batch token>/<base name>_<timestamp><ext>.
func buildObjectKey(ownerKey, token, filename string, now time.Time) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	return fmt.Sprintf("%s/%s/%s/%s_%s%s",
		imageKeyPrefix, ownerKey, token, base, now.Format(keyTimeLayout), ext)
}
