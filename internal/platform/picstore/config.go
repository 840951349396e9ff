package picstore

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/casavera/catalog-media-backend/internal/platform/logger"
	"github.com/casavera/catalog-media-backend/internal/utils"
)

type Backend string

const (
	BackendHTTP  Backend = "http"
	BackendGCS   Backend = "gcs"
	BackendLocal Backend = "local"
)

func IsSupportedBackend(b Backend) bool {
	switch b {
	case BackendHTTP, BackendGCS, BackendLocal:
		return true
	default:
		return false
	}
}

// Config selects and parameterizes the store backend. Mode resolution is
// strict: an unknown backend is a configuration error, never a silent
// fallback.
type Config struct {
	Backend Backend

	// HTTP backend
	BaseURL       string
	PublicBaseURL string
	MaxAttempts   int
	RetryDelay    time.Duration
	CallTimeout   time.Duration

	// GCS backend
	Bucket string

	// Local backend
	RootDir string
}

type ConfigErrorCode string

const (
	ConfigErrorInvalidBackend ConfigErrorCode = "invalid_backend"
	ConfigErrorMissingBaseURL ConfigErrorCode = "missing_base_url"
	ConfigErrorInvalidBaseURL ConfigErrorCode = "invalid_base_url"
	ConfigErrorMissingBucket  ConfigErrorCode = "missing_bucket"
	ConfigErrorMissingRootDir ConfigErrorCode = "missing_root_dir"
)

type ConfigError struct {
	Code    ConfigErrorCode
	Backend string
	Value   string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid picture store config"
	}
	switch e.Code {
	case ConfigErrorInvalidBackend:
		return fmt.Sprintf("invalid PICSTORE_BACKEND=%q (allowed: %q, %q, %q)",
			e.Backend, BackendHTTP, BackendGCS, BackendLocal)
	case ConfigErrorMissingBaseURL:
		return fmt.Sprintf("PICSTORE_BACKEND=%q requires PICSTORE_BASE_URL to be set", BackendHTTP)
	case ConfigErrorInvalidBaseURL:
		return fmt.Sprintf("invalid PICSTORE_BASE_URL=%q; expected absolute URL like https://files.example.com/pictures", e.Value)
	case ConfigErrorMissingBucket:
		return fmt.Sprintf("PICSTORE_BACKEND=%q requires PICSTORE_GCS_BUCKET to be set", BackendGCS)
	case ConfigErrorMissingRootDir:
		return fmt.Sprintf("PICSTORE_BACKEND=%q requires PICSTORE_ROOT_DIR to be set", BackendLocal)
	default:
		return "invalid picture store config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ResolveConfigFromEnv reads the PICSTORE_* environment and validates it.
func ResolveConfigFromEnv(log *logger.Logger) (Config, error) {
	cfg := Config{
		BaseURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("PICSTORE_BASE_URL")), "/"),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(os.Getenv("PICSTORE_PUBLIC_BASE_URL")), "/"),
		Bucket:        strings.TrimSpace(os.Getenv("PICSTORE_GCS_BUCKET")),
		RootDir:       strings.TrimSpace(os.Getenv("PICSTORE_ROOT_DIR")),
		MaxAttempts:   utils.GetEnvAsInt("PICSTORE_MAX_ATTEMPTS", defaultMaxAttempts, log),
		RetryDelay:    time.Duration(utils.GetEnvAsInt("PICSTORE_RETRY_DELAY_MS", 250, log)) * time.Millisecond,
		CallTimeout:   time.Duration(utils.GetEnvAsInt("PICSTORE_CALL_TIMEOUT_SECONDS", 30, log)) * time.Second,
	}

	rawBackend := strings.TrimSpace(os.Getenv("PICSTORE_BACKEND"))
	backend := Backend(strings.ToLower(rawBackend))
	if backend == "" {
		backend = BackendHTTP
	}
	if !IsSupportedBackend(backend) {
		return cfg, &ConfigError{Code: ConfigErrorInvalidBackend, Backend: rawBackend}
	}
	cfg.Backend = backend

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	switch cfg.Backend {
	case BackendHTTP:
		if cfg.BaseURL == "" {
			return &ConfigError{Code: ConfigErrorMissingBaseURL}
		}
		parsed, err := url.Parse(cfg.BaseURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return &ConfigError{Code: ConfigErrorInvalidBaseURL, Value: cfg.BaseURL, Cause: err}
		}
	case BackendGCS:
		if cfg.Bucket == "" {
			return &ConfigError{Code: ConfigErrorMissingBucket}
		}
	case BackendLocal:
		if cfg.RootDir == "" {
			return &ConfigError{Code: ConfigErrorMissingRootDir}
		}
	default:
		return &ConfigError{Code: ConfigErrorInvalidBackend, Backend: string(cfg.Backend)}
	}
	return nil
}
