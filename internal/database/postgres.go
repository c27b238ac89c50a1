package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var DB *pgxpool.Pool

// ConnectDB opens the shared pool. The workload is one JSONB row per user
// read and rewritten whole, so a small pool with recycled connections is
// plenty.
func ConnectDB(dbUrl string, logger *zap.Logger) error {
	var err error
	config, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return fmt.Errorf("unable to parse database config: %v", err)
	}

	config.MaxConns = 8
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 15 * time.Minute

	DB, err = pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := DB.Ping(context.Background()); err != nil {
		return fmt.Errorf("unable to ping database: %v", err)
	}

	logger.Info("connected to PostgreSQL",
		zap.Int32("max_conns", config.MaxConns),
	)
	return nil
}

func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}
