package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProfileDefaults checks Validate fills in every default.
func TestProfileDefaults(t *testing.T) {
	p := &Profile{}
	require.NoError(t, p.Validate())

	assert.Equal(t, "dev", p.Mode)
	assert.True(t, p.IsDev())
	assert.Equal(t, 8081, p.Port)
	assert.Equal(t, "minute", p.Granularity)
	assert.Equal(t, 1000, p.CacheCapacity)
	assert.Equal(t, time.Minute, p.CacheTTL)
	assert.Equal(t, 10.0, p.RateLimitPerSecond)
	assert.Equal(t, 20, p.RateLimitBurst)
	assert.Equal(t, time.UTC, p.Location())
}

// TestProfileFromEnv checks APPTIME_* variables override the tuning knobs.
func TestProfileFromEnv(t *testing.T) {
	t.Setenv("APPTIME_CACHE_CAPACITY", "50")
	t.Setenv("APPTIME_CACHE_TTL", "30s")
	t.Setenv("APPTIME_RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("APPTIME_RATE_LIMIT_BURST", "5")

	p := &Profile{Mode: "prod", Timezone: "Asia/Hong_Kong", Granularity: "Second"}
	p.FromEnv()
	require.NoError(t, p.Validate())

	assert.False(t, p.IsDev())
	assert.Equal(t, "Asia/Hong_Kong", p.Location().String())
	assert.Equal(t, "second", p.Granularity)
	assert.Equal(t, 50, p.CacheCapacity)
	assert.Equal(t, 30*time.Second, p.CacheTTL)
	assert.Equal(t, 2.5, p.RateLimitPerSecond)
	assert.Equal(t, 5, p.RateLimitBurst)
}

func TestProfileFromEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("APPTIME_CACHE_CAPACITY", "many")
	t.Setenv("APPTIME_CACHE_TTL", "soon")

	p := &Profile{CacheCapacity: 7, CacheTTL: time.Hour}
	p.FromEnv()
	assert.Equal(t, 7, p.CacheCapacity)
	assert.Equal(t, time.Hour, p.CacheTTL)
}

func TestProfileValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
	}{
		{"bad timezone", Profile{Timezone: "Nowhere/City"}},
		{"bad granularity", Profile{Granularity: "hour"}},
		{"bad port", Profile{Port: 70000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.profile
			assert.Error(t, p.Validate())
		})
	}
}
