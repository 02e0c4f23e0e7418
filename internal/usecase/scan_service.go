package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/domain"
	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/infrastructure/catalog"
)

// catalogCacheKey is the single cache slot holding the normalized catalog block
const catalogCacheKey = "catalog:block"

// modelFailureHint is appended to every model invocation failure surfaced to
// the operator
const modelFailureHint = "If this persists, the API key may be invalid or quota exceeded."

// ScanServiceConfig holds configuration for the scan service
type ScanServiceConfig struct {
	StoreURL           string
	CatalogTTL         time.Duration
	MaxCatalogLines    int
	EnableDebugLogging bool
}

// ScanService orchestrates one analysis request: catalog block -> prompt ->
// model invocation -> parse. Each call produces a freshly-allocated,
// immutable Diagnosis; no state is shared across concurrent scans.
type ScanService struct {
	cache         domain.CacheRepository
	catalogClient domain.CatalogClient
	model         domain.VisionModel

	storeURL        string
	catalogTTL      time.Duration
	maxCatalogLines int
	debug           bool
}

// NewScanService creates a new scan service with dependencies
func NewScanService(
	cache domain.CacheRepository,
	catalogClient domain.CatalogClient,
	model domain.VisionModel,
	config ScanServiceConfig,
) *ScanService {
	catalogTTL := config.CatalogTTL
	if catalogTTL == 0 {
		catalogTTL = 6 * time.Hour
	}

	maxLines := config.MaxCatalogLines
	if maxLines <= 0 {
		maxLines = catalog.DefaultMaxCatalogLines
	}

	storeURL := config.StoreURL
	if storeURL == "" {
		storeURL = catalog.DefaultStoreURL
	}

	return &ScanService{
		cache:           cache,
		catalogClient:   catalogClient,
		model:           model,
		storeURL:        storeURL,
		catalogTTL:      catalogTTL,
		maxCatalogLines: maxLines,
		debug:           config.EnableDebugLogging,
	}
}

// AnalyzeImage runs one full analysis for a base64 data-URL image.
// Flow: catalog block (cache -> feed -> static fallback) -> prompt -> model
// -> parse. Parsing never fails; only the model invocation can surface an
// error, and it carries the upstream message plus a remediation hint.
func (s *ScanService) AnalyzeImage(ctx context.Context, imageDataURL string) (*domain.Diagnosis, error) {
	if imageDataURL == "" {
		return nil, domain.ErrInvalidRequest
	}

	prompt := BuildAnalysisPrompt(s.catalogBlock(ctx))

	raw, err := s.model.Analyze(ctx, prompt, imageDataURL)
	if err != nil {
		return nil, fmt.Errorf("%w. %s", err, modelFailureHint)
	}

	if s.debug {
		log.Printf("[SCAN] Raw model response:\n%s", raw)
	}

	diagnosis := ParseDiagnosis(raw)
	return &diagnosis, nil
}

// catalogBlock returns the newline-delimited catalog text embedded in the
// prompt. The live feed is consulted at most once per TTL window; any
// failure degrades to the static catalog block so the prompt always carries
// some catalog context.
func (s *ScanService) catalogBlock(ctx context.Context) string {
	if cached, err := s.cache.Get(ctx, catalogCacheKey); err == nil && cached != "" {
		return cached
	}

	products, err := s.catalogClient.FetchProducts(ctx)
	if err != nil {
		log.Printf("[SCAN] Catalog feed unavailable, using static catalog: %v", err)
		return catalog.StaticCatalogBlock
	}

	block := catalog.BuildCatalogBlock(products, s.storeURL, s.maxCatalogLines)
	if block == "" {
		log.Printf("[SCAN] Catalog feed yielded no usable lines, using static catalog")
		return catalog.StaticCatalogBlock
	}

	if err := s.cache.Set(ctx, catalogCacheKey, block, s.catalogTTL); err != nil {
		// Caching is best-effort; the block is still good for this request
		log.Printf("[SCAN] Failed to cache catalog block: %v", err)
	}

	if s.debug {
		log.Printf("[SCAN] Refreshed catalog block (%d products)", len(products))
	}

	return block
}
