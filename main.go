package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/config"
	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	logger "github.com/beka-birhanu/vinom-pathfinder/infrastruture/log"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/repo"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient  *mongo.Client
	redisClient  *redis.Client
	solutionRepo i.SolutionRepo
	sortedQueue  i.SortedQueue
	mazeQueue    i.MazeQueue
	solver       i.Solver
	worker       *service.Worker
	appLogger    i.Logger
)

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initSolutionRepo(ctx context.Context) {
	switch config.Envs.Store {
	case config.StoreMongo:
		initMongo(ctx)
		solutionRepo = repo.NewSolutionRepo(mongoClient, config.Envs.DBName, "solutions")
	default:
		fileRepo, err := repo.NewFileSolutionRepo(config.Envs.StoreDir)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Opening file store: %v", err))
			os.Exit(1)
		}
		solutionRepo = fileRepo
	}
	appLogger.Info(fmt.Sprintf("Solution repository initialized: %s", config.Envs.Store))
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMazeQueue(ctx context.Context) {
	switch config.Envs.Queue {
	case config.QueueRedis:
		initRedis(ctx)
		sortedQueue = sortedstorage.NewRedisSortedQueue(redisClient, config.Envs.QueueTTL)
	default:
		sortedQueue = sortedstorage.NewMemorySortedQueue()
	}

	var err error
	mazeQueue, err = service.NewMazeQueue(sortedQueue, newLogger("QUEUE", config.ColorPurple), &service.QueueOptions{
		Key: config.Envs.QueueKey,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze queue: %v", err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Maze queue initialized: %s", config.Envs.Queue))
}

func initSolver() {
	var err error
	solver, err = service.NewSolver(service.SolverConfig{
		Episodes: config.Envs.Episodes,
		Seed:     config.Envs.Seed,
		Logger:   newLogger("SOLVER", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solver: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solver initialized")
}

func initWorker() {
	var err error
	worker, err = service.NewWorker(&service.WorkerConfig{
		Queue:        mazeQueue,
		Solver:       solver,
		Repo:         solutionRepo,
		Logger:       newLogger("WORKER", config.ColorBlue),
		PollInterval: time.Duration(config.Envs.PollInterval) * time.Second,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating worker: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Worker initialized")
}

func seedQueue(ctx context.Context) {
	if config.Envs.SeedMazes <= 0 {
		return
	}

	seed := config.Envs.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pushed, err := service.SeedQueue(ctx, mazeQueue, service.SeedConfig{
		Count:        config.Envs.SeedMazes,
		Width:        config.Envs.SeedMazeWidth,
		Height:       config.Envs.SeedMazeHeight,
		LearningRate: config.Envs.LearningRate,
		Discount:     config.Envs.Discount,
		Rand:         rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		appLogger.Warning(fmt.Sprintf("Seeding stopped after %d mazes: %v", pushed, err))
		return
	}
	appLogger.Info(fmt.Sprintf("Seeded %d generated mazes", pushed))
}

func serveMetrics() {
	if config.Envs.MetricsAddr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(config.Envs.MetricsAddr, mux); err != nil {
			appLogger.Error(fmt.Sprintf("Serving metrics: %v", err))
		}
	}()
	appLogger.Info(fmt.Sprintf("Serving metrics on %s", config.Envs.MetricsAddr))
}

func reportStored() {
	solutions, err := solutionRepo.List(dmn.ListQuery{})
	if err != nil {
		appLogger.Warning(fmt.Sprintf("Listing stored solutions: %v", err))
		return
	}

	solved := 0
	for _, s := range solutions {
		if s.Status == dmn.StatusSolved {
			solved++
		}
	}
	appLogger.Info(fmt.Sprintf("Stored solutions: %d total, %d solved", len(solutions), solved))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	appLogger = newLogger("APP", config.ColorGreen)

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	initSolutionRepo(initCtx)
	initMazeQueue(initCtx)
	cancel()

	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	initSolver()
	initWorker()
	serveMetrics()
	seedQueue(ctx)
	reportStored()

	worker.Run(ctx)
	reportStored()
}
