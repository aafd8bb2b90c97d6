// README: Config loader with env defaults for HTTP, Redis, AI, and bidding pacing.
package config

import (
	"os"
	"strconv"
	"time"
)

// BiddingConfig tunes the bid arrival pacing protocol. The defaults reproduce
// the marketplace feel: first bid lands almost immediately, the rest trickle
// in every step with a little jitter.
type BiddingConfig struct {
	FirstBidDelay time.Duration
	ArrivalStep   time.Duration
	ArrivalJitter time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Redis struct {
		// Addr is optional; empty disables the Redis event publisher.
		Addr string
	}
	AI struct {
		// GeminiKey is optional; empty falls back to the static bid source.
		GeminiKey string
	}
	Bidding BiddingConfig
	Payment struct {
		Window     time.Duration
		ExpiryTick time.Duration
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("SEABID_HTTP_ADDR", ":8080")
	cfg.Redis.Addr = os.Getenv("SEABID_REDIS_ADDR")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Bidding.FirstBidDelay = envOrDefaultDuration("SEABID_BID_FIRST_DELAY", 300*time.Millisecond)
	cfg.Bidding.ArrivalStep = envOrDefaultDuration("SEABID_BID_STEP", 600*time.Millisecond)
	cfg.Bidding.ArrivalJitter = envOrDefaultDuration("SEABID_BID_JITTER", 400*time.Millisecond)
	cfg.Payment.Window = envOrDefaultDuration("SEABID_PAY_WINDOW", 15*time.Minute)
	cfg.Payment.ExpiryTick = envOrDefaultDuration("SEABID_PAY_EXPIRY_TICK", 30*time.Second)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Millisecond
		}
	}
	return def
}
