package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"media-repurposer-go/internal/config"
)

var (
	sqliteOnce sync.Once
	sqliteInst *sql.DB
	sqliteErr  error
)

func sqlitePath() string {
	p := strings.TrimSpace(config.AppConfig.SQLitePath)
	if p == "" {
		p = "data/media_repurposer.db"
	}
	return p
}

func sqliteDB() (*sql.DB, error) {
	if backendKind() != backendSQLite {
		return nil, errors.New("sqlite backend disabled")
	}
	sqliteOnce.Do(func() {
		p := sqlitePath()
		if dir := filepath.Dir(p); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
		db, err := sql.Open("sqlite", p)
		if err != nil {
			sqliteErr = err
			return
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)

		if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
			_ = db.Close()
			sqliteErr = err
			return
		}
		if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
			_ = db.Close()
			sqliteErr = err
			return
		}

		if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS resolutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			platform TEXT NOT NULL,
			input_url TEXT NOT NULL,
			clean_url TEXT NOT NULL,
			primary_url TEXT NOT NULL,
			shape TEXT NOT NULL,
			media_count INTEGER NOT NULL,
			has_audio INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);`); err != nil {
			_ = db.Close()
			sqliteErr = err
			return
		}
		if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_resolutions_platform ON resolutions(platform, created_at);`); err != nil {
			_ = db.Close()
			sqliteErr = err
			return
		}
		sqliteInst = db
	})
	return sqliteInst, sqliteErr
}

func sqliteInsertRecord(rec Record) error {
	db, err := sqliteDB()
	if err != nil {
		return err
	}
	hasAudio := 0
	if rec.HasAudio {
		hasAudio = 1
	}
	_, err = db.Exec(
		`INSERT INTO resolutions(platform, input_url, clean_url, primary_url, shape, media_count, has_audio, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.Platform, rec.InputURL, rec.CleanURL, rec.PrimaryURL, rec.Shape, rec.MediaCount, hasAudio, rec.CreatedAt.Unix(),
	)
	return err
}
