package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	RoomCount   int
	// SpeedFactor compresses all countdowns by the given multiplier.
	// Debug aid only; logical behavior is unchanged.
	SpeedFactor int
}

// Load reads .env if present, then the environment, falling back to
// defaults for anything unset.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:        getString("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RoomCount:   getInt("ROOM_COUNT", 4),
		SpeedFactor: getInt("SPEED_FACTOR", 1),
	}
}

// Tick is the wall-clock duration of one logical countdown second.
func (c Config) Tick() time.Duration {
	if c.SpeedFactor <= 1 {
		return time.Second
	}
	return time.Second / time.Duration(c.SpeedFactor)
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
