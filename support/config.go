package support

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type TraceExporter string

const (
	NoTracing        TraceExporter = "none"
	ConsoleTracing   TraceExporter = "console"
	HoneycombTracing TraceExporter = "honeycomb"
	JaegerTracing    TraceExporter = "jaeger"
)

type Config struct {
	Address          string        `env:"WE_HTTP_ADDRESS" envDefault:":9080"`
	LogLevel         string        `env:"WE_LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"WE_LOG_FORMAT" envDefault:"json"`
	ExceptionDetails bool          `env:"WE_EXCEPTION_DETAILS" envDefault:"false"`
	MaxBodyBytes     int64         `env:"WE_MAX_BODY_BYTES" envDefault:"1048576"`
	JWTSecret        string        `env:"WE_JWT_SECRET"`
	TraceExporter    TraceExporter `env:"WE_TRACE_EXPORTER" envDefault:"none"`
	JaegerEndpoint   string        `env:"WE_JAEGER_ENDPOINT"`
	HoneycombTeam    string        `env:"WE_HONEYCOMB_TEAM"`
	HoneycombDataset string        `env:"WE_HONEYCOMB_DATASET"`
	ShutdownTimeout  time.Duration `env:"WE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("WE_HTTP_ADDRESS is required")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("WE_MAX_BODY_BYTES must not be negative")
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("WE_LOG_FORMAT must be json or console, not %q", c.LogFormat)
	}

	switch c.TraceExporter {
	case NoTracing, ConsoleTracing, JaegerTracing:
	case HoneycombTracing:
		if c.HoneycombTeam == "" || c.HoneycombDataset == "" {
			return fmt.Errorf("WE_HONEYCOMB_TEAM and WE_HONEYCOMB_DATASET are required for honeycomb tracing")
		}
	default:
		return fmt.Errorf("WE_TRACE_EXPORTER %q is not supported", c.TraceExporter)
	}

	return nil
}
