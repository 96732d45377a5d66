package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// StoreBackend selects which session store the analysis engine reads from.
const (
	StoreBackendDocument  = "document"
	StoreBackendWarehouse = "warehouse"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// which session store the analyzer reads: document | warehouse
	StoreBackend string `toml:"store_backend"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// rate limiting
	LoginRateLimitAllowedPerMin int `toml:"login_rate_limit_allowed_per_min"`
	// coach assistant api
	CoachAPIBaseURL  string `toml:"coach_api_base_url"`
	CoachLLMProvider string `toml:"coach_llm_provider"`
	CoachModel       string `toml:"coach_model"`
	// text to speech api
	TTSBaseURL string `toml:"tts_base_url"`
	TTSVoiceID string `toml:"tts_voice_id"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func Load(env, path string) (*Config, error) {
	var configs Toml
	if _, err := toml.DecodeFile(path, &configs); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := configs.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env %s missing", env)
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = StoreBackendDocument
	}
	switch cfg.StoreBackend {
	case StoreBackendDocument, StoreBackendWarehouse:
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}

	return cfg, nil
}
