package database

import (
	"context"
	"database/sql"
	"fmt"

	"interview-service/config"

	_ "github.com/lib/pq"
)

type PostgresClient struct {
	db     *sql.DB
	config *config.DBConfig
}

func NewPostgresClient(cfg *config.DBConfig) (*PostgresClient, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{
		db:     db,
		config: cfg,
	}, nil
}

func (c *PostgresClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *PostgresClient) GetDB() *sql.DB {
	return c.db
}

func (c *PostgresClient) InitSchema(ctx context.Context) error {
	createInterviewSessionsTable := `
		CREATE TABLE IF NOT EXISTS interview_sessions (
			id UUID PRIMARY KEY,
			candidate_id VARCHAR(255) NOT NULL,
			job_name VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'in_progress',
			questions_asked INTEGER NOT NULL DEFAULT 0,
			total_score NUMERIC(5,2) NOT NULL DEFAULT 0,
			report JSONB,
			started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_interview_sessions_candidate_id ON interview_sessions(candidate_id);
		CREATE INDEX IF NOT EXISTS idx_interview_sessions_status ON interview_sessions(status);
	`

	if _, err := c.db.ExecContext(ctx, createInterviewSessionsTable); err != nil {
		return fmt.Errorf("failed to create interview_sessions table: %w", err)
	}

	return nil
}
