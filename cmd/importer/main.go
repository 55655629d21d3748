// Command importer runs a single character import from the command line:
// it reads a builder export file, reconciles it against the catalog in
// Redis, persists the result, and prints a summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ironreach/steelbridge/internal/clients/codex"
	"github.com/ironreach/steelbridge/internal/config"
	"github.com/ironreach/steelbridge/internal/domain/source"
	"github.com/ironreach/steelbridge/internal/repositories/choices"
	"github.com/ironreach/steelbridge/internal/services/importer"
)

func main() {
	file := flag.String("file", "", "path to the builder export JSON file")
	owner := flag.String("owner", "cli", "owner id to record the import under")
	realm := flag.String("realm", "", "realm id to record the import under")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	doc, err := readDocument(*file)
	if err != nil {
		log.Fatalf("Failed to read export: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if closeErr := redisClient.Close(); closeErr != nil {
			log.Printf("Error closing Redis client: %v", closeErr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, pingErr)
	}

	catalogClient, err := codex.NewRedisClient(&codex.RedisConfig{Client: redisClient})
	if err != nil {
		log.Fatalf("Failed to create catalog client: %v", err)
	}
	if preloadErr := catalogClient.Preload(ctx); preloadErr != nil {
		log.Printf("Catalog preload failed, tables will load lazily: %v", preloadErr)
	}

	repo := choices.NewRedisRepository(&choices.RedisRepoConfig{Client: redisClient})

	svc, err := importer.NewService(&importer.ServiceConfig{
		Client:     catalogClient,
		Repository: repo,
		LevelCap:   cfg.Import.LevelCap,
	})
	if err != nil {
		log.Fatalf("Failed to create import service: %v", err)
	}

	output, err := svc.ImportCharacter(ctx, &importer.ImportCharacterInput{
		OwnerID:  *owner,
		RealmID:  *realm,
		Document: doc,
	})
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	printSummary(output)
}

func readDocument(path string) (*source.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Printf("Error closing %s: %v", path, closeErr)
		}
	}()

	return source.Parse(f)
}

func printSummary(output *importer.ImportCharacterOutput) {
	fmt.Printf("Imported %q as %s\n", output.Name, output.CharacterID)
	for _, section := range output.Sections {
		fmt.Printf("  %-9s %s: %d matched, %d skipped\n",
			section.Section, section.Name, section.Matched, section.Skipped)
		printSkillSlots(section.SkillSlots, output.Choices)
	}
	if len(output.Kits) > 0 {
		fmt.Printf("  kits: %v\n", output.Kits)
	}
	if len(output.Unresolved) > 0 {
		fmt.Printf("Could not match %d selection(s):\n", len(output.Unresolved))
		for _, u := range output.Unresolved {
			fmt.Printf("  - %s: %s\n", u.Name, u.Reason)
		}
	}
}

// printSkillSlots reports how many of the section's skill-choice slots
// received a selection, per category.
func printSkillSlots(slots map[string][]string, choices map[string]any) {
	categories := make([]string, 0, len(slots))
	for category := range slots {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		guids := slots[category]
		filled := 0
		for _, guid := range guids {
			if _, ok := choices[guid]; ok {
				filled++
			}
		}
		fmt.Printf("    skill slots [%s]: %d/%d filled\n", category, filled, len(guids))
	}
}
