package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient defines the interface for fetching the remote product feed
type CatalogClient interface {
	FetchProducts(ctx context.Context) ([]ShopifyProduct, error)
}

// VisionModel defines the interface for the vision-capable language model.
// Analyze sends the instruction prompt plus the image and returns the raw,
// unstructured text blob the model produced.
type VisionModel interface {
	Analyze(ctx context.Context, prompt, imageDataURL string) (string, error)
}
