package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/SamriddhiRoy/user-dashboard/internal/platform/config"
	"github.com/SamriddhiRoy/user-dashboard/internal/platform/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

var DB *sqlx.DB

func Connect() error {
	var err error
	DB, err = sqlx.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	DB.SetMaxOpenConns(config.AppConfig.DBMaxOpenConns)
	DB.SetMaxIdleConns(config.AppConfig.DBMaxOpenConns)
	DB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err = DB.PingContext(ctx); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	logger.Info("connected to PostgreSQL", zap.String("host", config.AppConfig.DBHost), zap.String("db", config.AppConfig.DBName))
	return nil
}

// ApplySchema creates the tables and indexes if they do not exist yet.
func ApplySchema(ctx context.Context) error {
	if _, err := DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	logger.Info("database schema applied")
	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
		logger.Info("database connection closed")
	}
}
