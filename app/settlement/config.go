package settlement

import "time"

// Config represents the configuration for the settlement module
type Config struct {
	Workers       int           `env:"SETTLEMENT_WORKERS" env-default:"4"`
	SweepInterval time.Duration `env:"SETTLEMENT_SWEEP_INTERVAL" env-default:"30s"`
	// SweepBatch bounds how many games one sweep enqueues so a backlog
	// cannot starve webhook-driven jobs.
	SweepBatch int `env:"SETTLEMENT_SWEEP_BATCH" env-default:"100"`
	// DedupeWindow buckets trigger epochs; duplicate enqueues for the same
	// game inside one window collapse to a single job.
	DedupeWindow time.Duration `env:"SETTLEMENT_DEDUPE_WINDOW" env-default:"10s"`
}

// GetDefaultConfig returns the default settlement configuration
func GetDefaultConfig() *Config {
	return &Config{
		Workers:       4,
		SweepInterval: 30 * time.Second,
		SweepBatch:    100,
		DedupeWindow:  10 * time.Second,
	}
}
