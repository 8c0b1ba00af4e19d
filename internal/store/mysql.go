package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"media-repurposer-go/internal/config"
)

var (
	mysqlOnce sync.Once
	mysqlInst *sql.DB
	mysqlErr  error
)

func mysqlDB() (*sql.DB, error) {
	if backendKind() != backendMySQL {
		return nil, errors.New("mysql backend disabled")
	}
	mysqlOnce.Do(func() {
		dsn := strings.TrimSpace(config.AppConfig.MySQLDSN)
		if dsn == "" {
			mysqlErr = errors.New("MYSQL_DSN is empty")
			return
		}
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			mysqlErr = err
			return
		}
		setDBPoolDefaults(db, 8)
		db.SetConnMaxIdleTime(2 * time.Minute)

		if err := initMySQLSchema(db); err != nil {
			_ = db.Close()
			mysqlErr = err
			return
		}
		mysqlInst = db
	})
	return mysqlInst, mysqlErr
}

func initMySQLSchema(db *sql.DB) error {
	stmt := `CREATE TABLE IF NOT EXISTS resolutions (
		id BIGINT NOT NULL AUTO_INCREMENT,
		platform VARCHAR(32) NOT NULL,
		input_url VARCHAR(2048) NOT NULL,
		clean_url VARCHAR(2048) NOT NULL,
		primary_url TEXT NOT NULL,
		shape VARCHAR(32) NOT NULL,
		media_count INT NOT NULL,
		has_audio TINYINT(1) NOT NULL,
		created_at BIGINT NOT NULL,
		PRIMARY KEY (id),
		KEY idx_resolutions_platform (platform, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("mysql init schema: %w", err)
	}
	return nil
}

func mysqlInsertRecord(rec Record) error {
	db, err := mysqlDB()
	if err != nil {
		return err
	}
	_, err = db.Exec(
		`INSERT INTO resolutions(platform, input_url, clean_url, primary_url, shape, media_count, has_audio, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.Platform, rec.InputURL, rec.CleanURL, rec.PrimaryURL, rec.Shape, rec.MediaCount, rec.HasAudio, rec.CreatedAt.Unix(),
	)
	return err
}
