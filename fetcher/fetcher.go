package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	accountfetcher "riftroster/fetcher/data/account"
	leaguefetcher "riftroster/fetcher/data/league"
	matchfetcher "riftroster/fetcher/data/match"
	"riftroster/fetcher/repositories"
	"riftroster/fetcher/requests"
	syncservice "riftroster/fetcher/services/sync"
	"riftroster/pkg/config"
	"riftroster/pkg/database"
	"riftroster/pkg/logger"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, relying on the environment")
		}
	}

	config.LoadEnv()

	db, err := database.NewConnection()
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get raw db connection: %v", err)
	}

	if err := database.RunMigrations(rawDb); err != nil {
		log.Fatal(err)
	}

	cycleLogger, err := logger.CreateLogger()
	if err != nil {
		log.Fatalf("Couldn't create the cycle logger: %v", err)
	}

	// Every upstream call of the engine funnels through one client.
	client := requests.NewRiotClient(requests.CreateRateLimiter())

	matches := matchfetcher.CreateMatchFetcher(client)
	leagues := leaguefetcher.CreateLeagueFetcher(client)
	accounts := accountfetcher.CreateAccountFetcher(client)

	matchRepo := repositories.NewMatchRepository(db)
	playerRepo := repositories.NewPlayerRepository(db)

	estimator := syncservice.NewEstimator(
		matches, config.Riot.QueueId, config.Riot.SeasonStartMs, config.Sync.RequestDelay)
	history := syncservice.NewHistoryFetcher(
		matches, config.Riot.QueueId, config.Riot.SeasonStartMs, config.Sync.RequestDelay)
	ingestor := syncservice.NewIngestor(
		history, matchRepo, config.Riot.SeasonStartMs, config.Sync.MaxMatchesPerCycle, cycleLogger)
	ranks := syncservice.NewRankFetcher(leagues)

	syncer := syncservice.NewRosterSyncer(&syncservice.RosterSyncerDeps{
		Accounts:      accounts,
		Estimator:     estimator,
		Ingestor:      ingestor,
		Ranks:         ranks,
		PlayerRepo:    playerRepo,
		MatchRepo:     matchRepo,
		Logger:        cycleLogger,
		RequestDelay:  config.Sync.RequestDelay,
		PlayerDelay:   config.Sync.PlayerDelay,
		CycleInterval: config.Sync.CycleInterval,
		SeasonStartMs: config.Riot.SeasonStartMs,
	})

	// Cancel the loop on termination, the current player still finishes.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Starting the roster sync engine.")
	syncer.Run(ctx)
	log.Println("Shutting down the roster sync engine.")
}
