package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port            string
	AllowedOrigins  []string
	JWTSecret       string
	SessionTokenTTL time.Duration

	BoardSize      int
	SearchDepth    int
	SearchMaxDepth int
	SearchPruning  bool
	BotDelay       time.Duration

	RedisURL      string
	RedisPassword string
	CacheTTL      time.Duration

	SessionMaxAge   time.Duration
	CleanupInterval time.Duration

	LogLevel logrus.Level
}

// LoadEnvFiles loads .env from the working directory, its parent and the
// user's xdg config dir (hex/hex.env). Variables already in the environment
// win, and missing files are skipped.
func LoadEnvFiles() {
	candidates := []string{".env", "../.env"}
	if path, err := xdg.SearchConfigFile("hex/hex.env"); err == nil {
		candidates = append(candidates, path)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logrus.Warnf("could not load %s: %v", path, err)
			continue
		}
		logrus.Debugf("loaded environment from %s", path)
	}
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Build allowed origins list (localhost + CSV values)
	allowedOrigins := []string{"http://localhost:5173"}
	if extras := GetEnv("ALLOWED_ORIGINS", ""); extras != "" {
		for _, origin := range strings.Split(extras, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	level, err := logrus.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		logrus.Warnf("invalid LOG_LEVEL, using info: %v", err)
		level = logrus.InfoLevel
	}

	cfg := &Config{
		Port:            port,
		AllowedOrigins:  allowedOrigins,
		JWTSecret:       GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		SessionTokenTTL: GetEnvAsDuration("SESSION_TOKEN_TTL_MINUTES", 24*time.Hour, time.Minute),

		BoardSize:      GetEnvAsInt("BOARD_SIZE", 5),
		SearchDepth:    GetEnvAsInt("SEARCH_DEPTH", 1),
		SearchMaxDepth: GetEnvAsInt("SEARCH_MAX_DEPTH", 4),
		SearchPruning:  GetEnvAsBool("SEARCH_PRUNING", false),
		BotDelay:       GetEnvAsDuration("BOT_DELAY_MS", 200*time.Millisecond, time.Millisecond),

		RedisURL:      GetEnv("REDIS_URL", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		CacheTTL:      GetEnvAsDuration("CACHE_TTL_MINUTES", 30*time.Minute, time.Minute),

		SessionMaxAge:   GetEnvAsDuration("SESSION_MAX_AGE_MINUTES", time.Hour, time.Minute),
		CleanupInterval: GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 10*time.Minute, time.Minute),

		LogLevel: level,
	}

	return cfg
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
		logrus.Warnf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		logrus.Warnf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit. Negative values fall
// back to the default.
func GetEnvAsDuration(key string, defaultValue, unit time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		logrus.Warnf("Invalid duration value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}
	return time.Duration(value) * unit
}
