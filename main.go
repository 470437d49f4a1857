package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/mazesolver/api"
	api_i "github.com/beka-birhanu/mazesolver/api/i"
	"github.com/beka-birhanu/mazesolver/api/identity"
	mazeapi "github.com/beka-birhanu/mazesolver/api/maze"
	"github.com/beka-birhanu/mazesolver/config"
	"github.com/beka-birhanu/mazesolver/domain"
	"github.com/beka-birhanu/mazesolver/encoder/pb"
	"github.com/beka-birhanu/mazesolver/infrastruture/cache"
	"github.com/beka-birhanu/mazesolver/infrastruture/token"
	"github.com/beka-birhanu/mazesolver/logger"
	"github.com/beka-birhanu/mazesolver/service"
	"github.com/beka-birhanu/mazesolver/service/i"
	"github.com/redis/go-redis/v9"
)

const usage = `usage:
  mazesolver [size]          build a maze and print it with its distance table
  mazesolver serve           run the HTTP API
  mazesolver token <subject> print a signed API token`

// Global variables for dependencies
var (
	redisClient     *redis.Client
	solutionCache   i.Cache
	snapshotEncoder i.SnapshotEncoder
	mazeService     *service.MazeService
	mazeController  api_i.Controller
	jwtTokenizer    i.Tokenizer
	router          *api.Router
	appLogger       i.Logger
)

func newLogger(name, color string) i.Logger {
	l, err := logger.New(name, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", name, err)
		os.Exit(1)
	}
	return l
}

func initRedis(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		appLogger.Warning("REDIS_ADDR not set, solution cache disabled")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initCache() {
	if redisClient == nil {
		return
	}

	var err error
	solutionCache, err = cache.NewRedisCache(redisClient, config.Envs.CacheTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating solution cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Solution cache initialized")
}

func initEncoder() {
	snapshotEncoder = &pb.Protobuf{}
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeService(&service.Config{
		MinSize:     config.Envs.MinMazeSize,
		MaxSize:     config.Envs.MaxMazeSize,
		ConnectExit: config.Envs.ConnectExit,
		Cache:       solutionCache,
		Encoder:     snapshotEncoder,
		Logger:      newLogger("MAZE-SERVICE", config.ColorCyan),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initJWTTokenizer() {
	if config.Envs.JWTSecret == "" {
		return
	}

	var err error
	jwtTokenizer, err = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating JWT tokenizer: %v", err))
		os.Exit(1)
	}
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, snapshotEncoder, newLogger("MAZE-API", config.ColorMagenta))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	if t == nil {
		appLogger.Warning("JWT_SECRET not set, protected routes are open")
	}

	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func runServe() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	initRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initCache()
	initEncoder()
	initMazeService()
	initJWTTokenizer()
	initMazeController()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}

func runToken(subject string) {
	initJWTTokenizer()
	if jwtTokenizer == nil {
		appLogger.Error("JWT_SECRET must be set to mint tokens")
		os.Exit(1)
	}

	ttl := time.Duration(config.Envs.JWTTTLMinutes) * time.Minute
	t, err := jwtTokenizer.Generate(subject, nil, ttl)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Generating token: %v", err))
		os.Exit(1)
	}
	fmt.Println(t)
}

func runConsole(args []string) {
	fmt.Println("-- Initialising Maze Solver --")
	fmt.Println()

	initEncoder()
	initMazeService()

	minSize, maxSize := mazeService.Limits()
	var size int
	if len(args) == 0 {
		size = promptSize(os.Stdin, os.Stdout, minSize, maxSize, config.Envs.DefaultMazeSize)
	} else {
		size = sizeFromArg(args[0], minSize, maxSize, config.Envs.DefaultMazeSize, os.Stdout)
	}

	solution, err := mazeService.Solve(context.Background(), domain.SolveRequest{Size: size})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Solving maze: %v", err))
		os.Exit(1)
	}
	printSolution(os.Stdout, solution)

	fmt.Println("-- Ending Maze Solver --")
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)

	args := os.Args[1:]
	switch {
	case len(args) > 0 && args[0] == "serve":
		runServe()
	case len(args) > 0 && args[0] == "token":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		runToken(args[1])
	case len(args) > 1:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	default:
		runConsole(args)
	}
}
