package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ironreach/steelbridge/internal/clients/codex"
	"github.com/ironreach/steelbridge/internal/config"
	"github.com/ironreach/steelbridge/internal/handlers/discord"
	"github.com/ironreach/steelbridge/internal/repositories/choices"
	"github.com/ironreach/steelbridge/internal/services/importer"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Bot Token: %s...%s", cfg.Discord.Token[:8], cfg.Discord.Token[len(cfg.Discord.Token)-4:])
	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
		cancel()
		log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, pingErr)
	}
	cancel()
	log.Println("Successfully connected to Redis")

	catalogClient, err := codex.NewRedisClient(&codex.RedisConfig{Client: redisClient})
	if err != nil {
		log.Fatalf("Failed to create catalog client: %v", err)
	}

	// Warm the catalog caches before accepting interactions
	preloadCtx, preloadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if preloadErr := catalogClient.Preload(preloadCtx); preloadErr != nil {
		log.Printf("Catalog preload failed, tables will load lazily: %v", preloadErr)
	}
	preloadCancel()

	repo := choices.NewRedisRepository(&choices.RedisRepoConfig{Client: redisClient})

	importService, err := importer.NewService(&importer.ServiceConfig{
		Client:     catalogClient,
		Repository: repo,
		LevelCap:   cfg.Import.LevelCap,
	})
	if err != nil {
		log.Fatalf("Failed to create import service: %v", err)
	}

	handler := discord.NewHandler(&discord.HandlerConfig{
		ImportService: importService,
		Repository:    repo,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	})

	dg.AddHandler(handler.HandleInteraction)

	if err := dg.Open(); err != nil {
		log.Fatalf("Failed to open Discord connection: %v", err)
	}
	defer func() {
		if closeErr := dg.Close(); closeErr != nil {
			log.Printf("Error closing Discord connection: %v", closeErr)
		}
	}()

	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		log.Fatalf("Failed to register commands: %v", err)
	}

	log.Println("Bot is running. Press Ctrl+C to exit.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
}
