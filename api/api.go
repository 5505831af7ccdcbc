package main

import (
	"log"
	"os"
	"riftroster/api/cache"
	"riftroster/api/handlers"
	"riftroster/api/routes"
	"riftroster/api/services"
	accountfetcher "riftroster/fetcher/data/account"
	leaguefetcher "riftroster/fetcher/data/league"
	matchfetcher "riftroster/fetcher/data/match"
	"riftroster/fetcher/repositories"
	"riftroster/fetcher/requests"
	syncservice "riftroster/fetcher/services/sync"
	"riftroster/pkg/config"
	"riftroster/pkg/database"
	"riftroster/pkg/logger"
	"riftroster/pkg/redis"

	"github.com/gin-gonic/gin"
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

	redisClient := redis.GetClient()

	cycleLogger, err := logger.CreateLogger()
	if err != nil {
		log.Fatalf("Couldn't create the sync logger: %v", err)
	}

	// The on-demand proxy calls share the same rate limited client shape
	// as the background engine, just a separate budget window.
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

	// Used only for the manual one-off sync endpoint.
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

	playerService := services.NewPlayerService(&services.PlayerServiceDeps{
		Accounts:   accounts,
		Estimator:  estimator,
		History:    history,
		Ranks:      ranks,
		PlayerRepo: playerRepo,
		MatchRepo:  matchRepo,
		Cache:      cache.NewPlayerCache(redisClient),
		Redis:      redisClient,
		Syncer:     syncer,
		Region:     config.Riot.Region,
	})

	// Create a new router with the routes setup.
	router := routes.NewRouter(gin.Default())
	router.SetupRoutes(
		handlers.NewPlayerHandler(playerService),
	)

	// Start the server.
	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
