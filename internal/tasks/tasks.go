package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/hibiken/asynq"
	"github.com/nfnt/resize"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"konnection/backend/internal/config"
	"konnection/backend/internal/storage"
)

const (
	TypeImageNormalize = "image:normalize"

	queueImages  = "images"
	queueDefault = "default"
)

// Enqueuer schedules background work. Services depend on this interface so
// tests can observe enqueued tasks without Redis.
type Enqueuer interface {
	EnqueueImageNormalize(ctx context.Context, url string) error
}

// Client enqueues tasks onto the asynq queues.
type Client struct {
	client *asynq.Client
}

// NewClient creates a task client sharing the application's Redis settings.
func NewClient(rdb *redis.Client) *Client {
	opts := rdb.Options()
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
	}
}

// ImageNormalizePayload identifies an uploaded image by its public URL.
type ImageNormalizePayload struct {
	URL string `json:"url"`
}

func (c *Client) EnqueueImageNormalize(ctx context.Context, url string) error {
	payload, err := json.Marshal(ImageNormalizePayload{URL: url})
	if err != nil {
		return fmt.Errorf("failed to marshal image task payload: %w", err)
	}
	task := asynq.NewTask(TypeImageNormalize, payload)
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue(queueImages)); err != nil {
		return fmt.Errorf("failed to enqueue image normalize task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Processor holds the dependencies task handlers need.
type Processor struct {
	cfg    *config.Config
	store  storage.IImageStorage
	logger *zap.Logger
}

func NewProcessor(cfg *config.Config, store storage.IImageStorage, logger *zap.Logger) *Processor {
	return &Processor{cfg: cfg, store: store, logger: logger}
}

// HandleImageNormalizeTask downsizes an uploaded image in place when it
// exceeds the configured maximum dimension. The object key stays the same so
// stored URLs remain valid.
func (p *Processor) HandleImageNormalizeTask(ctx context.Context, t *asynq.Task) error {
	var payload ImageNormalizePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image task payload: %v: %w", err, asynq.SkipRetry)
	}

	key, ok := p.store.ObjectKey(payload.URL)
	if !ok {
		p.logger.Warn("image task for foreign URL", zap.String("url", payload.URL))
		return fmt.Errorf("url not served from image store: %w", asynq.SkipRetry)
	}

	data, _, err := p.store.Fetch(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}

	maxSizeBytes := int64(p.cfg.ImageMaxSizeMB) * 1024 * 1024
	if int64(len(data)) > maxSizeBytes {
		p.logger.Warn("image exceeds max size, leaving untouched",
			zap.String("key", key), zap.Int("bytes", len(data)))
		return fmt.Errorf("image exceeds max size: %w", asynq.SkipRetry)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unsupported image format or corrupt image: %v: %w", err, asynq.SkipRetry)
	}

	maxDim := uint(p.cfg.ImageMaxDimension)
	if uint(img.Bounds().Dx()) <= maxDim && uint(img.Bounds().Dy()) <= maxDim {
		return nil
	}

	resized := resize.Thumbnail(maxDim, maxDim, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to re-encode resized image: %w", err)
	}

	if err := p.store.Replace(ctx, key, buf.Bytes(), "image/jpeg"); err != nil {
		return fmt.Errorf("failed to upload normalized image: %w", err)
	}

	p.logger.Info("normalized image",
		zap.String("key", key),
		zap.String("original_format", format),
		zap.Int("width", resized.Bounds().Dx()),
		zap.Int("height", resized.Bounds().Dy()))
	return nil
}

// RunServer starts the asynq worker and blocks until it stops.
func RunServer(rdb *redis.Client, processor *Processor, logger *zap.Logger) error {
	opts := rdb.Options()
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				queueImages:  5,
				queueDefault: 3,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeImageNormalize, processor.HandleImageNormalizeTask)

	return srv.Run(mux)
}
