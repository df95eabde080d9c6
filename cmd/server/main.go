package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pricelens/backend/config"
	httpDelivery "github.com/pricelens/backend/internal/delivery/http"
	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/cache"
	"github.com/pricelens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	var annotationCache domain.CacheRepository
	if cfg.Cache.Type == "memory" {
		annotationCache = cache.NewMemoryCache()
		log.Printf("Cache TTL: %s", cfg.Cache.TTL)
	} else {
		annotationCache = cache.NewNopCache()
		log.Printf("Annotation memoization disabled")
	}

	// Initialize the promo engine
	resolver := usecase.NewPriceResolver()
	catalog := usecase.NewCatalog(resolver)
	processor := usecase.NewDualPassProcessor(catalog, cfg.Engine.EnableDebugLogging)
	runner := usecase.NewBatchRunner(usecase.NewStoreBrandTagger(), processor)

	log.Printf("Catalog: %d strategies registered", len(catalog.Strategies()))
	if cfg.Engine.EnableDebugLogging {
		log.Printf("Engine debug logging enabled")
	}

	processingService := usecase.NewProcessingService(
		annotationCache,
		runner,
		usecase.ProcessingServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Engine.EnableDebugLogging,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(processingService)

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
