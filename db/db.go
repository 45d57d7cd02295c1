package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"fashionfusion-storefront/config"
)

// Open creates the key-value store selected by cfg.Driver
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		log.Printf("✓ Using in-memory store")
		return NewMemoryStore(), nil
	case "pebble":
		store, err := NewPebbleStore(cfg.PebbleDir)
		if err != nil {
			return nil, err
		}
		log.Printf("✓ Pebble store opened at %s", cfg.PebbleDir)
		return store, nil
	case "redis":
		store := NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		log.Printf("✓ Redis connection established successfully (%s)", cfg.RedisAddr)
		return store, nil
	case "postgres":
		sqlDB, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return newMigratedSQLStore(ctx, sqlDB, DialectPostgres)
	case "sqlite":
		sqlDB, err := openSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return newMigratedSQLStore(ctx, sqlDB, DialectSQLite)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func newMigratedSQLStore(ctx context.Context, sqlDB *sql.DB, dialect Dialect) (Store, error) {
	store := NewSQLStore(sqlDB, dialect)
	if err := store.Migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate kv_store table: %w", err)
	}
	return store, nil
}

// PostgresDSN builds the connection string from DATABASE_URL or the individual DB_* settings
func PostgresDSN(cfg config.StoreConfig) (string, error) {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}

	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	port := cfg.DBPort
	if port == "" {
		port = "5432"
	}
	sslmode := cfg.DBSSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, port, cfg.DBUser, cfg.DBPassword, cfg.DBName, sslmode), nil
}

func openPostgres(ctx context.Context, cfg config.StoreConfig) (*sql.DB, error) {
	connStr, err := PostgresDSN(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✓ Database connection established successfully")
	return sqlDB, nil
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	log.Printf("✓ SQLite database opened at %s", path)
	return sqlDB, nil
}
