package profile

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/apptime/server/timezone"
)

// Profile is the configuration to start the resolver server and CLI.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Timezone is the IANA zone wall-clock readings are interpreted in
	Timezone string
	// Granularity is the default output precision, "minute" or "second"
	Granularity string
	// Version is the current version of server
	Version string

	// Result cache
	CacheCapacity int           // APPTIME_CACHE_CAPACITY (default: 1000)
	CacheTTL      time.Duration // APPTIME_CACHE_TTL (default: 1m)

	// Per-client rate limiting
	RateLimitPerSecond float64 // APPTIME_RATE_LIMIT_PER_SECOND (default: 10)
	RateLimitBurst     int     // APPTIME_RATE_LIMIT_BURST (default: 20)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Location returns the parsed Timezone, UTC when it is invalid.
func (p *Profile) Location() *time.Location {
	loc, _ := timezone.ParseTimezone(p.Timezone)
	return loc
}

// FromEnv loads the tuning knobs that have no command line flag from
// APPTIME_* environment variables. Unset or unparsable variables leave the
// current value in place.
func (p *Profile) FromEnv() {
	if v, err := strconv.Atoi(os.Getenv("APPTIME_CACHE_CAPACITY")); err == nil {
		p.CacheCapacity = v
	}
	if v, err := time.ParseDuration(os.Getenv("APPTIME_CACHE_TTL")); err == nil {
		p.CacheTTL = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("APPTIME_RATE_LIMIT_PER_SECOND"), 64); err == nil {
		p.RateLimitPerSecond = v
	}
	if v, err := strconv.Atoi(os.Getenv("APPTIME_RATE_LIMIT_BURST")); err == nil {
		p.RateLimitBurst = v
	}
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}
	if p.Port == 0 {
		p.Port = 8081
	}
	if p.Port < 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}

	if _, err := timezone.ParseTimezone(p.Timezone); err != nil {
		return errors.Wrap(err, "failed to load timezone")
	}

	p.Granularity = strings.ToLower(strings.TrimSpace(p.Granularity))
	switch p.Granularity {
	case "":
		p.Granularity = "minute"
	case "minute", "second":
	default:
		return errors.Errorf("invalid granularity %q, want minute or second", p.Granularity)
	}

	if p.CacheCapacity <= 0 {
		p.CacheCapacity = 1000
	}
	if p.CacheTTL <= 0 {
		p.CacheTTL = time.Minute
	}
	if p.RateLimitPerSecond <= 0 {
		p.RateLimitPerSecond = 10
	}
	if p.RateLimitBurst <= 0 {
		p.RateLimitBurst = 20
	}
	return nil
}
