package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

// Config stores runtime configuration for the auction service.
type Config struct {
	Port             string        `validate:"required"`
	LogLevel         string        `validate:"required"`
	JWTSecret        string        `validate:"required"`
	MinIncrement     int64         `validate:"gt=0"`
	TimerDuration    time.Duration `validate:"gt=0"`
	LockTimeout      time.Duration `validate:"gt=0"`
	WatchdogEnabled  bool
	WatchdogInterval time.Duration `validate:"gt=0"`
	WSSendBuffer     int           `validate:"gt=0"`
	WSEventBuffer    int           `validate:"gt=0"`
	StorageBackend   string        `validate:"oneof=memory mongo"`
	MongoURI         string        `validate:"required_if=StorageBackend mongo"`
	MongoDatabase    string        `validate:"required_if=StorageBackend mongo"`
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	minIncrement, err := getEnvAsInt64("AUCTION_MIN_INCREMENT", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUCTION_MIN_INCREMENT: %w", err)
	}
	timerDuration, err := getEnvAsDuration("AUCTION_TIMER_DURATION", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUCTION_TIMER_DURATION: %w", err)
	}
	lockTimeout, err := getEnvAsDuration("AUCTION_LOCK_TIMEOUT", 2*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUCTION_LOCK_TIMEOUT: %w", err)
	}
	watchdogEnabled, err := strconv.ParseBool(getEnv("AUCTION_WATCHDOG_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUCTION_WATCHDOG_ENABLED: %w", err)
	}
	watchdogInterval, err := getEnvAsDuration("AUCTION_WATCHDOG_INTERVAL", time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUCTION_WATCHDOG_INTERVAL: %w", err)
	}
	sendBuffer, err := getEnvAsInt("WS_SEND_BUFFER", 256)
	if err != nil {
		return Config{}, fmt.Errorf("parse WS_SEND_BUFFER: %w", err)
	}
	eventBuffer, err := getEnvAsInt("WS_EVENT_BUFFER", 1024)
	if err != nil {
		return Config{}, fmt.Errorf("parse WS_EVENT_BUFFER: %w", err)
	}

	cfg := Config{
		Port:             ":" + strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		MinIncrement:     minIncrement,
		TimerDuration:    timerDuration,
		LockTimeout:      lockTimeout,
		WatchdogEnabled:  watchdogEnabled,
		WatchdogInterval: watchdogInterval,
		WSSendBuffer:     sendBuffer,
		WSEventBuffer:    eventBuffer,
		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DATABASE", "auction"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}
