package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Sparql      SparqlConfig
	Render      RenderConfig
	FileService FileServiceConfig
	Files       FilesConfig
	Storage     StorageConfig
	MongoDB     MongoDBConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	OIDC        OIDCConfig
	Debug       DebugConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SparqlConfig points at the knowledge store's SPARQL endpoint. Update
// requests go to UpdateEndpoint, which defaults to the query endpoint.
type SparqlConfig struct {
	Endpoint       string
	UpdateEndpoint string
}

type RenderConfig struct {
	// URL is the base URL of the HTML-to-PDF rendering service; the
	// client POSTs the rendered document to <URL>/generate.
	URL string
}

type FileServiceConfig struct {
	// URL is the base URL of the file service used to delete stale
	// file records (DELETE <URL>/files/{id}).
	URL string
}

type FilesConfig struct {
	// ResourceBase is the URI prefix under which virtual file
	// identities are minted.
	ResourceBase string
}

type StorageConfig struct {
	// Backend selects where physical PDF bytes go: "disk" or "minio".
	Backend string
	// Path is the durable-storage mount used by the disk backend.
	Path string
	// Scheme is the storage URI prefix recorded for physical files
	// written by the disk backend (e.g. "share://").
	Scheme string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type OIDCConfig struct {
	Issuer   string
	ClientID string
}

type DebugConfig struct {
	// DumpHTML writes the rendered document to DumpPath before it is
	// sent for conversion. Diagnostic only.
	DumpHTML bool
	DumpPath string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5008")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("RENDER_SERVICE_URL", "http://html-to-pdf")
	viper.SetDefault("FILE_SERVICE_URL", "http://file")
	viper.SetDefault("FILE_RESOURCE_BASE", "http://themis.vlaanderen.be/id/bestand")
	viper.SetDefault("STORAGE_BACKEND", "disk")
	viper.SetDefault("STORAGE_PATH", "/share")
	viper.SetDefault("STORAGE_URI_SCHEME", "share://")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("DEBUG_DUMP_PATH", "/tmp/rendered-minutes.html")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Sparql: SparqlConfig{
			Endpoint:       getEnvOrPanic("SPARQL_ENDPOINT"),
			UpdateEndpoint: viper.GetString("SPARQL_UPDATE_ENDPOINT"),
		},
		Render: RenderConfig{
			URL: viper.GetString("RENDER_SERVICE_URL"),
		},
		FileService: FileServiceConfig{
			URL: viper.GetString("FILE_SERVICE_URL"),
		},
		Files: FilesConfig{
			ResourceBase: viper.GetString("FILE_RESOURCE_BASE"),
		},
		Storage: StorageConfig{
			Backend: viper.GetString("STORAGE_BACKEND"),
			Path:    viper.GetString("STORAGE_PATH"),
			Scheme:  viper.GetString("STORAGE_URI_SCHEME"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		OIDC: OIDCConfig{
			Issuer:   viper.GetString("OIDC_ISSUER"),
			ClientID: viper.GetString("OIDC_CLIENT_ID"),
		},
		Debug: DebugConfig{
			DumpHTML: viper.GetBool("DEBUG_DUMP_HTML"),
			DumpPath: viper.GetString("DEBUG_DUMP_PATH"),
		},
	}

	if cfg.Sparql.UpdateEndpoint == "" {
		cfg.Sparql.UpdateEndpoint = cfg.Sparql.Endpoint
	}

	return cfg, nil
}

func getEnvOrPanic(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required", key)
	}
	return v
}
