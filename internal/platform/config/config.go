package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures everything the server binary needs from the environment so
// main stays lean.
type Config struct {
	Addr          string `env:"DOKDIG_ADDR" envDefault:":8080"`
	JWTSigningKey string `env:"JWT_SIGNING_KEY,required"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	RedisURL        string        `env:"REDIS_URL" envDefault:"localhost:6379"`
	SubjectCacheTTL time.Duration `env:"SUBJECT_CACHE_TTL" envDefault:"10m"`

	KafkaBrokers   []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	FinalizedTopic string   `env:"FINALIZED_TOPIC" envDefault:"dokdig.sykmelding.ferdigstilt"`

	ArchiveBaseURL  string `env:"ARCHIVE_BASE_URL,required"`
	ArchiveToken    string `env:"ARCHIVE_TOKEN,required"`
	CaseTaskBaseURL string `env:"CASE_TASK_BASE_URL,required"`
	CaseTaskToken   string `env:"CASE_TASK_TOKEN,required"`
	PersonBaseURL   string `env:"PERSON_BASE_URL,required"`
	PersonToken     string `env:"PERSON_TOKEN,required"`

	UpstreamTimeout    time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	ReconcileInterval  time.Duration `env:"RECONCILE_INTERVAL" envDefault:"1m"`
	ReconcileBatchSize int           `env:"RECONCILE_BATCH_SIZE" envDefault:"50"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
