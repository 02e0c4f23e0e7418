package main

import (
	"fmt"
	"log"
	"os"

	"github.com/guptaji3010/Biovalley-AI-Scanner/config"
	httpDelivery "github.com/guptaji3010/Biovalley-AI-Scanner/internal/delivery/http"
	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/infrastructure/cache"
	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/infrastructure/catalog"
	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/infrastructure/groq"
	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Bio Valley Scanner Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()

	catalogClient := catalog.NewClient(cfg.Catalog.StoreURL, cfg.Catalog.Limit)
	groqClient := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Model)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		groqClient.SetDebug(true)
		log.Printf("Client debug mode enabled")
	}

	log.Printf("Catalog feed: %s (limit %d, ttl %s)", cfg.Catalog.StoreURL, cfg.Catalog.Limit, cfg.Catalog.TTL)
	if cfg.Groq.APIKey != "" {
		log.Printf("Groq API configured: %s (model: %s)", cfg.Groq.BaseURL, cfg.Groq.Model)
	}

	// Initialize usecase layer
	scanService := usecase.NewScanService(
		memoryCache,
		catalogClient,
		groqClient,
		usecase.ScanServiceConfig{
			StoreURL:           cfg.Catalog.StoreURL,
			CatalogTTL:         cfg.Catalog.TTL,
			MaxCatalogLines:    cfg.Catalog.Limit,
			EnableDebugLogging: cfg.Server.Environment == "development",
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(scanService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
