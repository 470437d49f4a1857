package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	MinMazeSize     int    // Smallest accepted maze size
	MaxMazeSize     int    // Largest accepted maze size
	DefaultMazeSize int    // Size used when the console input is unusable
	ConnectExit     bool   // Open a wall next to a sealed exit after carving
	HostIP          string // Host IP for the server
	RESTPort        int    // Port for the REST API
	GinMode         string // Mode for the Gin framework (e.g., release, debug, test)
	RedisAddr       string // Redis address for the solution cache; empty disables caching
	RedisPassword   string // Password for Redis
	RedisDB         int    // Redis database number
	CacheTTLSeconds int    // Lifetime of cached solutions
	JWTSecret       string // Secret key for JWT signing; empty disables authorization
	JWTIssuer       string // Issuer claim for JWTs
	JWTTTLMinutes   int    // Lifetime of tokens minted by the token command
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
		MinMazeSize:     getEnvAsIntWithDefault("MAZE_MIN_SIZE", 20),
		MaxMazeSize:     getEnvAsIntWithDefault("MAZE_MAX_SIZE", 100),
		DefaultMazeSize: getEnvAsIntWithDefault("MAZE_DEFAULT_SIZE", 20),
		ConnectExit:     getEnvAsBoolWithDefault("MAZE_CONNECT_EXIT", false),
		HostIP:          getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:        getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:         getEnvWithDefault("GIN_MODE", "release"),
		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:   getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsIntWithDefault("REDIS_DB", 0),
		CacheTTLSeconds: getEnvAsIntWithDefault("CACHE_TTL_SECONDS", 600),
		JWTSecret:       getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:       getEnvWithDefault("JWT_ISSUER", "mazesolver"),
		JWTTTLMinutes:   getEnvAsIntWithDefault("JWT_TTL_MINUTES", 60),
	}

	if c.MinMazeSize <= 0 || c.MaxMazeSize < c.MinMazeSize {
		log.Fatalf("[APP] [FATAL] Invalid maze size range [%d, %d]", c.MinMazeSize, c.MaxMazeSize)
	}
	if c.DefaultMazeSize < c.MinMazeSize || c.DefaultMazeSize > c.MaxMazeSize {
		log.Fatalf("[APP] [FATAL] Default maze size %d outside [%d, %d]", c.DefaultMazeSize, c.MinMazeSize, c.MaxMazeSize)
	}

	return c
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer, logging a fatal error if it cannot be parsed.
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

// getEnvAsBoolWithDefault retrieves an environment variable as a boolean, logging a fatal error if it cannot be parsed.
func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a boolean: %v", key, err)
	}
	return value
}
