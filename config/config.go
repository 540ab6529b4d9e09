package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken    string
	DatabaseURL string

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	// Время ежедневных проверок задач (локальное время процесса)
	OverdueHour    int
	OverdueMinute  int
	UpcomingHour   int
	UpcomingMinute int
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:             os.Getenv("BOT_TOKEN"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		SessionTTL:           envDuration("SESSION_TTL", 24*time.Hour),
		SessionSweepInterval: envDuration("SESSION_SWEEP_INTERVAL", time.Hour),
		OverdueHour:          envInt("OVERDUE_HOUR", 9),
		OverdueMinute:        envInt("OVERDUE_MINUTE", 0),
		UpcomingHour:         envInt("UPCOMING_HOUR", 18),
		UpcomingMinute:       envInt("UPCOMING_MINUTE", 0),
	}

	return cfg, nil
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
