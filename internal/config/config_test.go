package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 4, cfg.RoomCount)
	assert.Equal(t, 1, cfg.SpeedFactor)
	assert.Equal(t, time.Second, cfg.Tick())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("ROOM_COUNT", "8")
	t.Setenv("SPEED_FACTOR", "10")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 8, cfg.RoomCount)
	assert.Equal(t, time.Second/10, cfg.Tick())
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("ROOM_COUNT", "zero")
	t.Setenv("SPEED_FACTOR", "-3")

	cfg := Load()
	assert.Equal(t, 4, cfg.RoomCount)
	assert.Equal(t, time.Second, cfg.Tick())
}
