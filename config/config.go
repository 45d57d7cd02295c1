package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env     string
	Port    string
	BaseURL string // Base URL the lookbook renderer navigates to (e.g., "http://localhost:8080")

	Store   StoreConfig
	Catalog CatalogConfig
	Events  EventsConfig

	PromoConfigPath        string
	LoginAttemptsPerMinute int
	ChromePath             string
	ImageCacheDir          string
}

// StoreConfig selects and configures the key-value backend
type StoreConfig struct {
	Driver string // memory, pebble, redis, postgres or sqlite

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	SQLitePath string
	PebbleDir  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// CatalogConfig controls where the product list comes from
type CatalogConfig struct {
	ProductsFile string // Optional JSON file with a product array
	Seed         int64
	Size         int
	PageSize     int
}

// EventsConfig configures order event publishing. Empty values disable a sink.
type EventsConfig struct {
	KafkaBrokers string // Comma separated host:port list
	KafkaTopic   string
	File         string // JSONL file path
}

// Load reads the configuration from environment variables, applying defaults
func Load() *Config {
	port := getEnv("PORT", "8080")
	// PORT from some hosts comes with a leading colon
	port = strings.TrimPrefix(port, ":")

	return &Config{
		Env:     getEnv("ENV", "development"),
		Port:    port,
		BaseURL: getEnv("BASE_URL", "http://localhost:"+port),
		Store: StoreConfig{
			Driver:        strings.ToLower(getEnv("STORE_DRIVER", "memory")),
			DatabaseURL:   os.Getenv("DATABASE_URL"),
			DBHost:        os.Getenv("DB_HOST"),
			DBPort:        getEnv("DB_PORT", "5432"),
			DBUser:        os.Getenv("DB_USER"),
			DBPassword:    os.Getenv("DB_PASSWORD"),
			DBName:        os.Getenv("DB_NAME"),
			DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
			SQLitePath:    getEnv("SQLITE_PATH", "data/storefront.db"),
			PebbleDir:     getEnv("PEBBLE_DIR", "data/pebble"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			ProductsFile: os.Getenv("PRODUCTS_FILE"),
			Seed:         int64(getEnvInt("CATALOG_SEED", 42)),
			Size:         getEnvInt("CATALOG_SIZE", 50),
			PageSize:     getEnvInt("PAGE_SIZE", 12),
		},
		Events: EventsConfig{
			KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "storefront.orders"),
			File:         os.Getenv("ORDER_EVENTS_FILE"),
		},
		PromoConfigPath:        os.Getenv("PROMO_CONFIG"),
		LoginAttemptsPerMinute: getEnvInt("LOGIN_ATTEMPTS_PER_MINUTE", 10),
		ChromePath:             os.Getenv("CHROME_PATH"),
		ImageCacheDir:          getEnv("IMAGE_CACHE_DIR", "cache/images"),
	}
}

// IsProduction reports whether ENV is set to production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
