package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage and queue backends.
const (
	StoreMongo  = "mongo"
	StoreFile   = "file"
	QueueRedis  = "redis"
	QueueMemory = "memory"
)

// Config holds the application's configuration values.
type Config struct {
	Store          string  // Solution store backend (mongo or file)
	StoreDir       string  // Root directory of the file store
	DBHost         string  // Hostname or IP address for the database
	DBPort         int     // Port number for the database
	DBUser         string  // Username for the database
	DBPassword     string  // Password for the database
	DBName         string  // Name of the database
	Queue          string  // Pending maze queue backend (redis or memory)
	RedisHost      string  // Hostname or IP address for Redis
	RedisPort      int     // Port number for Redis
	RedisPassword  string  // Password for Redis
	QueueKey       string  // Redis key of the pending maze queue
	QueueTTL       int     // Seconds before an idle queue key expires; 0 keeps it
	PollInterval   int     // Seconds the worker waits when the queue is empty
	Episodes       int     // Q-learning solve budget per maze
	LearningRate   float64 // Default learning rate for seeded mazes
	Discount       float64 // Default discount for seeded mazes
	Seed           int64   // Random seed; the clock when 0
	SeedMazes      int     // Number of generated mazes enqueued at startup
	SeedMazeWidth  int     // Room columns of generated mazes
	SeedMazeHeight int     // Room rows of generated mazes
	MetricsAddr    string  // Listen address for /metrics; disabled when empty
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	c := Config{
		Store:          getEnvWithDefault("STORE", StoreFile),
		StoreDir:       getEnvWithDefault("STORE_DIR", "mazes"),
		Queue:          getEnvWithDefault("QUEUE", QueueMemory),
		QueueKey:       getEnvWithDefault("QUEUE_KEY", "mazes:pending"),
		QueueTTL:       getEnvAsIntWithDefault("QUEUE_TTL_SECONDS", 0),
		PollInterval:   getEnvAsIntWithDefault("POLL_INTERVAL_SECONDS", 10),
		Episodes:       getEnvAsIntWithDefault("EPISODES", 10000),
		LearningRate:   getEnvAsFloatWithDefault("LEARNING_RATE", 0.1),
		Discount:       getEnvAsFloatWithDefault("DISCOUNT", 0.95),
		Seed:           int64(getEnvAsIntWithDefault("SEED", 0)),
		SeedMazes:      getEnvAsIntWithDefault("SEED_MAZES", 0),
		SeedMazeWidth:  getEnvAsIntWithDefault("SEED_MAZE_WIDTH", 5),
		SeedMazeHeight: getEnvAsIntWithDefault("SEED_MAZE_HEIGHT", 5),
		MetricsAddr:    getEnvWithDefault("METRICS_ADDR", ""),
	}

	switch c.Store {
	case StoreMongo:
		c.DBHost = mustGetEnv("DB_HOST")
		c.DBPort = mustGetEnvAsInt("DB_PORT")
		c.DBUser = mustGetEnv("DB_USER")
		c.DBPassword = mustGetEnv("DB_PASS")
		c.DBName = mustGetEnv("DB_NAME")
	case StoreFile:
	default:
		log.Fatalf("[APP] [FATAL] STORE must be %q or %q, got %q", StoreMongo, StoreFile, c.Store)
	}

	switch c.Queue {
	case QueueRedis:
		c.RedisHost = mustGetEnv("REDIS_HOST")
		c.RedisPort = mustGetEnvAsInt("REDIS_PORT")
		c.RedisPassword = getEnvWithDefault("REDIS_PASS", "")
	case QueueMemory:
	default:
		log.Fatalf("[APP] [FATAL] QUEUE must be %q or %q, got %q", QueueRedis, QueueMemory, c.Queue)
	}

	return c
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}
