package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                string
	MatchmakingInterval time.Duration
	AllowedOrigins      []string

	// Optional backends. Empty values disable the feature.
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisURL             string
	RedisPassword        string

	LeaderboardFile string
}

// LoadConfig reads configuration from the environment. args are the process
// arguments after the binary name; a single numeric argument overrides the
// port, which is how the server has always been launched.
func LoadConfig(args []string) *Config {
	port := GetEnv("PORT", "8080")
	if len(args) > 0 {
		if _, err := strconv.Atoi(args[0]); err == nil {
			port = args[0]
		} else {
			log.Printf("Invalid port argument: %s. Using port %s", args[0], port)
		}
	}

	intervalSec := GetEnvAsInt("MATCHMAKING_INTERVAL_SECONDS", 1)

	allowedOrigins := []string{}
	if csv := GetEnv("ALLOWED_ORIGINS", ""); csv != "" {
		for _, origin := range strings.Split(csv, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	home, _ := os.UserHomeDir()
	leaderboardFile := GetEnv("LEADERBOARD_FILE", filepath.Join(home, ".connect4_leaderboard.csv"))

	return &Config{
		Port:                 port,
		MatchmakingInterval:  time.Duration(intervalSec) * time.Second,
		AllowedOrigins:       allowedOrigins,
		DatabaseURL:          GetEnv("DATABASE_URL", ""),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisURL:             GetEnv("REDIS_URL", ""),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		LeaderboardFile:      leaderboardFile,
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
