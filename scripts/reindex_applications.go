package main

import (
	"context"
	"log"
	"os"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

// Rebuilds the similar-candidate index for every stored application.
func main() {
	log.Println("🚀 Starting application reindex...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	appRepo := repositories.NewApplicationRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	indexer := services.NewIndexer(
		appRepo,
		services.NewTextExtractor(),
		services.NewTextChunker(),
		geminiService,
		qdrantService,
		1,
		0,
	)

	applications, err := appRepo.FindAll()
	if err != nil {
		log.Fatalf("❌ Failed to list applications: %v", err)
	}

	successCount := 0
	failCount := 0

	for _, app := range applications {
		log.Printf("📄 Indexing application %d (%s)", app.ID, app.Name)

		if err := indexer.IndexApplication(ctx, app.ID); err != nil {
			log.Printf("   ❌ Failed: %v", err)
			failCount++
			continue
		}

		successCount++
	}

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Reindex Summary:")
	log.Printf("   ✅ Successful: %d applications", successCount)
	log.Printf("   ❌ Failed: %d applications", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}
