package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the users and posts tables when they do not exist yet.
// The service owns its schema; IF NOT EXISTS keeps restarts idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name          VARCHAR(255)  NOT NULL,
			email         VARCHAR(255)  NOT NULL,
			password_hash VARCHAR(255)  NOT NULL,
			role          VARCHAR(32)   NOT NULL DEFAULT 'CLIENT',
			is_active     BOOLEAN       NOT NULL DEFAULT FALSE,
			created_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS posts (
			id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			author_id  BIGINT UNSIGNED NOT NULL,
			title      VARCHAR(255)    NOT NULL,
			content    TEXT            NOT NULL,
			is_premium BOOLEAN         NOT NULL DEFAULT FALSE,
			created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_posts_author (author_id),
			CONSTRAINT fk_posts_author FOREIGN KEY (author_id) REFERENCES users (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
