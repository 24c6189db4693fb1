package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/cpf-explainer/internal/entity"
	pkgRetry "github.com/futig/cpf-explainer/internal/pkg/retry"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration (optional, enables persistent simulation history)
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"1"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	EmbeddingConnectorCfg EmbeddingConnectorConfig `envPrefix:"EMBEDDING_"`
	LLMConnectorCfg       LLMConnectorConfig       `envPrefix:"LLM_"`

	// Corpus and retrieval configuration
	CorpusCfg    CorpusConfig    `envPrefix:"CORPUS_"`
	RetrievalCfg RetrievalConfig `envPrefix:"RETRIEVAL_"`

	// Retirement sum benchmarks
	BenchmarkCfg BenchmarkConfig `envPrefix:"BENCHMARK_"`

	// In-memory simulation history
	HistoryCfg HistoryConfig `envPrefix:"HISTORY_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Simulator presets (loaded from YAML file)
	PresetsPath string `env:"PRESETS_PATH" envDefault:"internal/config/presets.yaml"`
	Presets     []entity.Preset

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	Endpoint string               `env:"ENDPOINT" envDefault:"/embeddings"`
	Model    string               `env:"MODEL" envDefault:"text-embedding-3-small"`
	Retry    pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	Endpoint    string               `env:"ENDPOINT" envDefault:"/chat/completions"`
	Model       string               `env:"MODEL" envDefault:"gpt-4.1-mini"`
	Temperature float64              `env:"TEMPERATURE" envDefault:"0.3"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com/v1"`
}

// CorpusConfig locates the raw documents and the persisted corpus file
type CorpusConfig struct {
	RawDir   string `env:"RAW_DIR" envDefault:"data/raw"`
	Path     string `env:"PATH" envDefault:"data/processed/cpf_corpus.jsonl"`
	MaxChars int    `env:"MAX_CHARS" envDefault:"800"`
}

// RetrievalConfig tunes query-time retrieval
type RetrievalConfig struct {
	TopK          int           `env:"TOP_K" envDefault:"5"`
	QueryCacheTTL time.Duration `env:"QUERY_CACHE_TTL" envDefault:"15m"`
	// Request limits for the HTTP and Telegram front ends
	MaxK              int `env:"MAX_K" envDefault:"20"`
	MaxQuestionLength int `env:"MAX_QUESTION_LENGTH" envDefault:"2000"`
}

// BenchmarkConfig holds the retirement sums of the current cohort year
type BenchmarkConfig struct {
	BRS       float64 `env:"BRS" envDefault:"106500"`
	FRS       float64 `env:"FRS" envDefault:"213000"`
	ERS       float64 `env:"ERS" envDefault:"426000"`
	YearLabel string  `env:"YEAR_LABEL" envDefault:"2025"`
}

// Benchmarks converts the configuration into the domain value.
func (b BenchmarkConfig) Benchmarks() entity.Benchmarks {
	return entity.Benchmarks{
		BRS:       b.BRS,
		FRS:       b.FRS,
		ERS:       b.ERS,
		YearLabel: b.YearLabel,
	}
}

// HistoryConfig configures the in-memory simulation history used without a database
type HistoryConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// presetsFile represents the structure of presets.yaml
type presetsFile struct {
	Presets []entity.Preset `yaml:"presets"`
}

// LoadConfig loads .env.<environment> (if present) and parses the environment.
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := loadPresets(cfg); err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	b := cfg.BenchmarkCfg
	if b.BRS < 0 || b.BRS > b.FRS || b.FRS > b.ERS {
		errs = append(errs, fmt.Sprintf("BENCHMARK_* must satisfy 0 <= BRS <= FRS <= ERS, got %.2f, %.2f, %.2f", b.BRS, b.FRS, b.ERS))
	}

	if cfg.CorpusCfg.MaxChars < 1 {
		errs = append(errs, fmt.Sprintf("CORPUS_MAX_CHARS must be positive, got %d", cfg.CorpusCfg.MaxChars))
	}

	if cfg.RetrievalCfg.TopK < 1 || cfg.RetrievalCfg.TopK > 50 {
		errs = append(errs, fmt.Sprintf("RETRIEVAL_TOP_K must be between 1 and 50, got %d", cfg.RetrievalCfg.TopK))
	}

	if cfg.RetrievalCfg.MaxK < cfg.RetrievalCfg.TopK {
		errs = append(errs, fmt.Sprintf("RETRIEVAL_MAX_K must be >= RETRIEVAL_TOP_K, got %d", cfg.RetrievalCfg.MaxK))
	}

	if cfg.RetrievalCfg.MaxQuestionLength < 1 {
		errs = append(errs, fmt.Sprintf("RETRIEVAL_MAX_QUESTION_LENGTH must be positive, got %d", cfg.RetrievalCfg.MaxQuestionLength))
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("LLM_TEMPERATURE must be between 0 and 2, got %.2f", cfg.LLMConnectorCfg.Temperature))
	}

	if !cfg.EnableMocks {
		if cfg.EmbeddingConnectorCfg.Token == "" {
			errs = append(errs, "EMBEDDING_TOKEN is required when ENABLE_MOCKS is false")
		}
		if cfg.LLMConnectorCfg.Token == "" {
			errs = append(errs, "LLM_TOKEN is required when ENABLE_MOCKS is false")
		}
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

var defaultPresets = []entity.Preset{
	{
		Name: "Typical 35-year-old (mid-income)",
		Inputs: entity.RetirementInputs{
			CurrentAge: 35, RetirementAge: 65, CurrentSavings: 60000, MonthlyContribution: 900,
			SalaryGrowthRate: 0.02, AssumedReturnRate: 0.04, TargetMonthlyIncome: 2200,
		},
	},
	{
		Name: "Age 45, catching up",
		Inputs: entity.RetirementInputs{
			CurrentAge: 45, RetirementAge: 65, CurrentSavings: 140000, MonthlyContribution: 1000,
			SalaryGrowthRate: 0.015, AssumedReturnRate: 0.04, TargetMonthlyIncome: 2500,
		},
	},
	{
		Name: "Near retirement (age 55)",
		Inputs: entity.RetirementInputs{
			CurrentAge: 55, RetirementAge: 65, CurrentSavings: 260000, MonthlyContribution: 1100,
			SalaryGrowthRate: 0.01, AssumedReturnRate: 0.04, TargetMonthlyIncome: 2500,
		},
	},
}

// DefaultPresets returns a copy of the built-in simulator presets.
func DefaultPresets() []entity.Preset {
	return append([]entity.Preset(nil), defaultPresets...)
}

func loadPresets(cfg *Config) error {
	presets, err := ReadPresets(cfg.PresetsPath)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: presets file not found at %s, using default presets\n", cfg.PresetsPath)
		cfg.Presets = DefaultPresets()
		return nil
	}
	if err != nil {
		return err
	}

	cfg.Presets = presets
	return nil
}

// ReadPresets parses a presets YAML file.
func ReadPresets(path string) ([]entity.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("presets file is empty: %s", path)
	}

	var file presetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse presets YAML: %w", err)
	}

	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("presets file contains no presets: %s", path)
	}

	for _, p := range file.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: preset name", entity.ErrMissingField)
		}
		if p.Inputs.RetirementAge < p.Inputs.CurrentAge {
			return nil, fmt.Errorf("preset %q: %w", p.Name, entity.ErrInvalidRange)
		}
	}

	return file.Presets, nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
