package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"callguard/internal/repository"
	"callguard/internal/service"
	"callguard/pkg/config"
	"callguard/pkg/logger"
	"callguard/pkg/postgres"

	"go.uber.org/zap"
)

// SeedCase mirrors one entry of the scam case seed file.
type SeedCase struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

func main() {
	casesPath := flag.String("cases", filepath.Join("cmd", "seed", "scam_cases.json"), "path to the scam case seed file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	caseRepo := repository.NewCaseRepository(db, appLogger)
	encoder := service.NewHTTPEncoder(&cfg.Encoder, appLogger)
	detectionService := service.NewDetectionService(encoder, caseRepo, &cfg.RAG, appLogger)

	if err := detectionService.Bootstrap(ctx); err != nil {
		appLogger.Fatal("Failed to bootstrap similarity index", zap.Error(err))
	}

	cases, err := loadSeedCases(*casesPath)
	if err != nil {
		appLogger.Fatal("Failed to load seed cases", zap.String("path", *casesPath), zap.Error(err))
	}

	appLogger.Info("Seeding scam case knowledge base", zap.Int("cases", len(cases)))

	// AddCase is an upsert keyed by id, so re-running the seeder refreshes
	// embeddings instead of duplicating cases.
	var failed int
	for _, c := range cases {
		if err := detectionService.AddCase(ctx, c.ID, c.Category, c.Description, c.Summary); err != nil {
			appLogger.Error("Failed to seed scam case",
				zap.String("id", c.ID),
				zap.String("category", c.Category),
				zap.Error(err),
			)
			failed++
			continue
		}
		appLogger.Info("Seeded scam case",
			zap.String("id", c.ID),
			zap.String("category", c.Category),
		)
	}

	if failed > 0 {
		appLogger.Fatal("Seeding finished with failures", zap.Int("failed", failed))
	}
	appLogger.Info("Seeding completed successfully")
}

func loadSeedCases(path string) ([]SeedCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var cases []SeedCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, c := range cases {
		if c.ID == "" || c.Category == "" {
			return nil, fmt.Errorf("seed case %d is missing id or category", i)
		}
	}

	return cases, nil
}
