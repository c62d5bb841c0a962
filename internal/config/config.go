package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // DATA_TIMEZONE must resolve in minimal images
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Data    DataConfig
	Graph   GraphConfig
	Logging LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MetricsEnabled    bool
	AllowedOriginsCSV string
	APIBase           string
}

// AllowedOrigins splits AllowedOriginsCSV, dropping blanks.
func (h HTTPConfig) AllowedOrigins() []string {
	return splitList(h.AllowedOriginsCSV)
}

// Data source kinds.
const (
	SourceCSV   = "csv"
	SourceGraph = "graph"
)

// DataConfig selects where the exports are read from and how they are
// interpreted.
type DataConfig struct {
	Source       string
	MembersPath  string
	PaymentsPath string
	Location     *time.Location
	CacheTTL     time.Duration
	MainRegions  []string
}

// GraphConfig describes connectivity to the graph database holding the
// exports.
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
	defaultAPIBase          = "/api"
	defaultMembersPath      = "./data/members.csv"
	defaultPaymentsPath     = "./data/payments.csv"
	defaultCacheTTL         = 5 * time.Minute
	defaultMainRegions      = "Auckland,Wellington,Canterbury"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:            valueOrDefault("SERVER_HOST", defaultHost),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			APIBase:         normalizeBase(valueOrDefault("API_BASE", defaultAPIBase)),
		},
		Data: DataConfig{
			Source:       strings.ToLower(valueOrDefault("DATA_SOURCE", SourceCSV)),
			MembersPath:  valueOrDefault("MEMBERS_CSV", defaultMembersPath),
			PaymentsPath: valueOrDefault("PAYMENTS_CSV", defaultPaymentsPath),
			CacheTTL:     defaultCacheTTL,
			MainRegions:  splitList(valueOrDefault("MAIN_REGIONS", defaultMainRegions)),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
		Graph: GraphConfig{
			URI:            os.Getenv("GRAPH_URI"),
			Database:       valueOrDefault("GRAPH_DATABASE", ""),
			Username:       os.Getenv("GRAPH_USERNAME"),
			Password:       os.Getenv("GRAPH_PASSWORD"),
			MaxConnections: parseIntWithDefault("GRAPH_MAX_CONNECTIONS", defaultGraphMaxSessions),
		},
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	if v := os.Getenv("SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ReadTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.WriteTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("SERVER_IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.IdleTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_IDLE_TIMEOUT: %w", err)
		}
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ShutdownTimeout = d
		} else {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
		}
	}

	cfg.HTTP.MetricsEnabled = parseBoolWithDefault("SERVER_METRICS_ENABLED", false)
	cfg.HTTP.AllowedOriginsCSV = os.Getenv("SERVER_ALLOWED_ORIGINS")

	switch cfg.Data.Source {
	case SourceCSV:
	case SourceGraph:
		if cfg.Graph.URI == "" {
			return Config{}, fmt.Errorf("DATA_SOURCE=graph requires GRAPH_URI")
		}
	default:
		return Config{}, fmt.Errorf("invalid DATA_SOURCE %q: want %s or %s", cfg.Data.Source, SourceCSV, SourceGraph)
	}

	loc, err := time.LoadLocation(valueOrDefault("DATA_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DATA_TIMEZONE: %w", err)
	}
	cfg.Data.Location = loc

	if v := os.Getenv("DATA_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DATA_CACHE_TTL: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("DATA_CACHE_TTL must not be negative")
		}
		cfg.Data.CacheTTL = d
	}

	return cfg, nil
}

func splitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeBase returns base with a leading slash and no trailing slash; "/"
// becomes "".
func normalizeBase(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
