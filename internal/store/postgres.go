package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"media-repurposer-go/internal/config"
)

var (
	pgOnce sync.Once
	pgInst *sql.DB
	pgErr  error
)

func postgresDB() (*sql.DB, error) {
	if backendKind() != backendPostgres {
		return nil, errors.New("postgres backend disabled")
	}
	pgOnce.Do(func() {
		dsn := strings.TrimSpace(config.AppConfig.PostgresDSN)
		if dsn == "" {
			pgErr = errors.New("POSTGRES_DSN is empty")
			return
		}
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			pgErr = err
			return
		}
		setDBPoolDefaults(db, 8)
		db.SetConnMaxIdleTime(2 * time.Minute)

		if err := initPostgresSchema(db); err != nil {
			_ = db.Close()
			pgErr = err
			return
		}
		pgInst = db
	})
	return pgInst, pgErr
}

func initPostgresSchema(db *sql.DB) error {
	stmt := `CREATE TABLE IF NOT EXISTS resolutions (
		id BIGSERIAL PRIMARY KEY,
		platform TEXT NOT NULL,
		input_url TEXT NOT NULL,
		clean_url TEXT NOT NULL,
		primary_url TEXT NOT NULL,
		shape TEXT NOT NULL,
		media_count INTEGER NOT NULL,
		has_audio BOOLEAN NOT NULL,
		created_at BIGINT NOT NULL
	);`
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("postgres init schema: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_resolutions_platform ON resolutions(platform, created_at);`); err != nil {
		return fmt.Errorf("postgres init schema: %w", err)
	}
	return nil
}

func postgresInsertRecord(rec Record) error {
	db, err := postgresDB()
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO resolutions(platform, input_url, clean_url, primary_url, shape, media_count, has_audio, created_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8);`,
		rec.Platform, rec.InputURL, rec.CleanURL, rec.PrimaryURL, rec.Shape, rec.MediaCount, rec.HasAudio, rec.CreatedAt.Unix(),
	)
	return err
}
