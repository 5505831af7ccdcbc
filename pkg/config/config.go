package config

import (
	"os"
	"strconv"
	"time"
)

// Riot API configuration struct.
type RiotConfiguration struct {
	ApiKey        string
	Region        string // Platform region, e.g. euw1.
	RoutingRegion string // Regional routing value for account/match, e.g. europe.

	// Only ranked solo queue matches are counted and stored.
	QueueId int

	// Start of the current competitive season in epoch milliseconds.
	// Matches before it are ignored everywhere.
	SeasonStartMs int64
}

// Sync engine pacing configuration struct.
type SyncConfiguration struct {
	RequestDelay  time.Duration // Delay between sequential upstream calls.
	PlayerDelay   time.Duration // Delay between two roster players.
	CycleInterval time.Duration // Pause between two full roster cycles.

	// Ceiling of matches ingested for a single player in one cycle.
	// A huge backlog accrues across multiple cycles instead.
	MaxMatchesPerCycle int
}

// Database configuration struct.
type DatabaseConfiguration struct {
	URL            string
	Database       string
	MigrationsPath string
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// S3 bucket configuration for the log upload.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

var (
	Riot     RiotConfiguration
	Sync     SyncConfiguration
	Database DatabaseConfiguration
	Redis    RedisConfiguration
	Bucket   BucketConfiguration
)

// Load the variables.
func LoadEnv() {
	// Load the Riot configuration.
	Riot.ApiKey = os.Getenv("RIOT_API_KEY")
	Riot.Region = getEnv("RIOT_REGION", "euw1")
	Riot.RoutingRegion = getEnv("RIOT_ROUTING_REGION", "europe")
	Riot.QueueId = getEnvInt("RIOT_QUEUE_ID", 420)
	Riot.SeasonStartMs = getEnvInt64("RIOT_SEASON_START_MS", 1736931600000)

	// Load the sync pacing configuration.
	Sync.RequestDelay = getEnvDuration("SYNC_REQUEST_DELAY", 2*time.Second)
	Sync.PlayerDelay = getEnvDuration("SYNC_PLAYER_DELAY", 5*time.Second)
	Sync.CycleInterval = getEnvDuration("SYNC_CYCLE_INTERVAL", 10*time.Minute)
	Sync.MaxMatchesPerCycle = getEnvInt("SYNC_MAX_MATCHES_PER_CYCLE", 300)

	// Load the database configuration.
	Database.URL = os.Getenv("DATABASE_URL")
	Database.Database = getEnv("DATABASE_NAME", "riftroster")
	Database.MigrationsPath = getEnv("MIGRATIONS_PATH", "migrations")

	// Load the Redis configuration.
	Redis.Host = os.Getenv("REDIS_HOST")
	Redis.Port = os.Getenv("REDIS_PORT")
	Redis.Password = os.Getenv("REDIS_PASSWORD")

	// Load the bucket configuration.
	Bucket.Region = os.Getenv("BUCKET_REGION")
	Bucket.Endpoint = os.Getenv("BUCKET_ENDPOINT")
	Bucket.AccessKey = os.Getenv("BUCKET_ACCESS_KEY")
	Bucket.AccessSecret = os.Getenv("BUCKET_ACCESS_SECRET")
	Bucket.LogBucket = os.Getenv("BUCKET_LOG_NAME")
}

// Get a env variable with a fallback default.
func getEnv(key string, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

// Get a integer env variable with a fallback default.
func getEnvInt(key string, def int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return def
}

// Get a int64 env variable with a fallback default.
func getEnvInt64(key string, def int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

// Get a duration env variable with a fallback default.
func getEnvDuration(key string, def time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return def
}
