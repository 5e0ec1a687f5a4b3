package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the tags API server configuration
type Config struct {
	Env      Env
	Minio    MinioConfig
	NATS     NATSConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// BrowserConfig is the tag browser configuration
type BrowserConfig struct {
	Env     Env
	TagsAPI TagsAPIConfig
	Cache   CacheConfig
	NATS    NATSConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

// IsProd reports whether the process runs in production
func (e Env) IsProd() bool {
	return e.Env == "prod"
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"3333"`
}

type MinioConfig struct {
	Endpoint          string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName        string        `envconfig:"MINIO_BUCKET_NAME" default:"tag-exports"`
	AccessKey         string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey         string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	DownloadURLExpiry time.Duration `envconfig:"MINIO_DOWNLOAD_URL_EXPIRY" default:"15m"`
	CleanupEvery      time.Duration `envconfig:"MINIO_CLEANUP_EVERY" default:"10m"`
	UseSSL            bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"TAGS"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"tagboard"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"tags.created"`
}

// Enabled reports whether a NATS server is configured
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type TagsAPIConfig struct {
	URL     string        `envconfig:"TAGS_API_URL" default:"http://localhost:3333"`
	Timeout time.Duration `envconfig:"TAGS_API_TIMEOUT" default:"10s"`
	RPS     float64       `envconfig:"TAGS_API_RPS" default:"0"`
	Burst   int           `envconfig:"TAGS_API_BURST" default:"5"`
	// MinDelay holds every successful list response before it is surfaced, 0 disables it
	MinDelay time.Duration `envconfig:"TAGS_API_MIN_DELAY" default:"0s"`
}

type CacheConfig struct {
	StaleTime  time.Duration `envconfig:"CACHE_STALE_TIME" default:"10s"`
	MaxEntries int           `envconfig:"CACHE_MAX_ENTRIES" default:"100"`
}

// Load loads the server configuration from the environment
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadBrowser loads the browser configuration from the environment
func LoadBrowser() (*BrowserConfig, error) {
	var cfg BrowserConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
