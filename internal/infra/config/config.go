package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServerPort int    `env:"SERVER_PORT" envDefault:"8000"`
	BodyLimit  string `env:"BODY_LIMIT"  envDefault:"2G"`

	WorkRoot string `env:"WORK_ROOT" envDefault:"/tmp/screenshot-api"`

	FFmpegBin   string `env:"FFMPEG_BIN"   envDefault:"ffmpeg"`
	FFprobeBin  string `env:"FFPROBE_BIN"  envDefault:"ffprobe"`
	ToolTimeout int    `env:"TOOL_TIMEOUT_SECONDS" envDefault:"60"`

	DefaultScreenshots int `env:"DEFAULT_SCREENSHOTS" envDefault:"10"`
	DefaultQuality     int `env:"DEFAULT_QUALITY"     envDefault:"2"`

	// Optional job audit trail; disabled when empty.
	DatabaseURL string `env:"DATABASE_URL" envDefault:""`

	// Optional archive retention; disabled when the endpoint is empty.
	MinIOEndpoint      string `env:"MINIO_ENDPOINT"       envDefault:""`
	MinIOAccessKey     string `env:"MINIO_ACCESS_KEY"     envDefault:"minioadmin"`
	MinIOSecretKey     string `env:"MINIO_SECRET_KEY"     envDefault:"minioadmin"`
	MinIOUseSSL        bool   `env:"MINIO_USE_SSL"        envDefault:"false"`
	MinIOArchiveBucket string `env:"MINIO_ARCHIVE_BUCKET" envDefault:"screenshots"`

	MetricsPort    int    `env:"METRICS_PORT"    envDefault:"8083"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" envDefault:"http://jaeger:4318/v1/traces"`
	LogLevel       string `env:"LOG_LEVEL"       envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
