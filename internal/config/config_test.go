package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// setRequired populates the variables Load() refuses to run without.
func setRequired(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "7")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("OPERATOR_EMAIL", "ops@lot.test")
	t.Setenv("OPERATOR_PASSWORD", "hunter2")
}

func TestLoadFacilityDefaults(t *testing.T) {
	setRequired(t)

	cfg := Load()

	assert.Equal(t, 10, cfg.ParkingCapacity)
	assert.Equal(t, 10, cfg.WaitingCapacity)
	assert.Equal(t, int64(50), cfg.FeePerHour)
	assert.Equal(t, 100, cfg.MaxVehicles)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15, cfg.AccessTTLMin)
	assert.Empty(t, cfg.ViewerEmail)
}

func TestLoadFacilityOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PARKING_CAPACITY", "2")
	t.Setenv("WAITING_CAPACITY", "1")
	t.Setenv("FEE_PER_HOUR", "75")
	t.Setenv("MAX_VEHICLES", "500")
	t.Setenv("VIEWER_EMAIL", "viewer@lot.test")
	t.Setenv("VIEWER_PASSWORD", "view")

	cfg := Load()

	assert.Equal(t, 2, cfg.ParkingCapacity)
	assert.Equal(t, 1, cfg.WaitingCapacity)
	assert.Equal(t, int64(75), cfg.FeePerHour)
	assert.Equal(t, 500, cfg.MaxVehicles)
	assert.Equal(t, "viewer@lot.test", cfg.ViewerEmail)
}

func TestLoadInvalidNumericFallsBackToDefault(t *testing.T) {
	setRequired(t)
	t.Setenv("PARKING_CAPACITY", "lots")

	cfg := Load()

	assert.Equal(t, 10, cfg.ParkingCapacity)
}

func TestCacheAndRateLimitDefaults(t *testing.T) {
	cache := LoadCacheConfig()
	assert.True(t, cache.Enabled)
	assert.True(t, cache.Methods["GET"])
	assert.Equal(t, 5*time.Second, cache.TTL)
	assert.Equal(t, "parking:cache", cache.Prefix)

	rl := LoadRateLimitConfig()
	assert.True(t, rl.Enabled)
	assert.Equal(t, 60, rl.Capacity)
	assert.Equal(t, time.Second, rl.RefillInterval)
	assert.GreaterOrEqual(t, rl.TTL, 5*rl.RefillInterval)
}
