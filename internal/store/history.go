package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"media-repurposer-go/internal/config"
)

// Record is one resolved URL written to the history store.
type Record struct {
	Platform   string    `json:"platform" bson:"platform"`
	InputURL   string    `json:"input_url" bson:"input_url"`
	CleanURL   string    `json:"clean_url" bson:"clean_url"`
	PrimaryURL string    `json:"primary_url" bson:"primary_url"`
	Shape      string    `json:"shape" bson:"shape"`
	MediaCount int       `json:"media_count" bson:"media_count"`
	HasAudio   bool      `json:"has_audio" bson:"has_audio"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

func (r Record) CSVHeader() []string {
	return []string{"platform", "input_url", "clean_url", "primary_url", "shape", "media_count", "has_audio", "created_at"}
}

func (r Record) ToCSV() []string {
	return []string{
		r.Platform,
		r.InputURL,
		r.CleanURL,
		r.PrimaryURL,
		r.Shape,
		strconv.Itoa(r.MediaCount),
		strconv.FormatBool(r.HasAudio),
		r.CreatedAt.Format(time.RFC3339),
	}
}

// Init verifies the configured backend is reachable. The file and xlsx
// backends need no setup.
func Init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	switch backendKind() {
	case backendSQLite:
		db, err := sqliteDB()
		if err != nil {
			return err
		}
		return db.PingContext(ctx)
	case backendMySQL:
		db, err := mysqlDB()
		if err != nil {
			return err
		}
		return db.PingContext(ctx)
	case backendPostgres:
		db, err := postgresDB()
		if err != nil {
			return err
		}
		return db.PingContext(ctx)
	case backendMongoDB:
		_, err := mongoClient()
		return err
	default:
		return nil
	}
}

// SaveRecord appends one resolution to the configured backend.
func SaveRecord(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	switch backendKind() {
	case backendSQLite:
		return sqliteInsertRecord(rec)
	case backendMySQL:
		return mysqlInsertRecord(rec)
	case backendPostgres:
		return postgresInsertRecord(rec)
	case backendMongoDB:
		return mongoInsertRecord(ctx, rec)
	case backendXLSX:
		s := NewXlsxStore(config.AppConfig.DataDir)
		return s.Save(rec, historyFilename("xlsx"))
	default:
		s := NewJsonStore(config.AppConfig.DataDir)
		return s.Save(rec, historyFilename("jsonl"))
	}
}

func historyFilename(ext string) string {
	return fmt.Sprintf("resolutions_%s.%s", time.Now().Format("2006-01-02"), ext)
}
