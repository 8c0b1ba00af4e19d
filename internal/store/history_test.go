package store

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"media-repurposer-go/internal/config"
)

func resetSQLiteForTest(t *testing.T) {
	t.Helper()
	if sqliteInst != nil {
		_ = sqliteInst.Close()
	}
	sqliteInst = nil
	sqliteErr = nil
	sqliteOnce = sync.Once{}
}

func sampleRecord() Record {
	return Record{
		Platform:   "tiktok",
		InputURL:   "https://vt.tiktok.com/ZSabc/",
		CleanURL:   "https://www.tiktok.com/@jane/video/123",
		PrimaryURL: "https://cdn.example.com/v.mp4",
		Shape:      "single_video",
		MediaCount: 1,
		HasAudio:   true,
		CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveRecordFileBackend(t *testing.T) {
	tmp := t.TempDir()
	config.AppConfig.StoreBackend = "file"
	config.AppConfig.DataDir = tmp

	if err := SaveRecord(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("SaveRecord err: %v", err)
	}
	if err := SaveRecord(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("SaveRecord second err: %v", err)
	}

	path := filepath.Join(tmp, historyFilename("jsonl"))
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open history file: %v", err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines+1, err)
		}
		if rec.Platform != "tiktok" {
			t.Fatalf("platform = %q, want tiktok", rec.Platform)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 history lines, got %d", lines)
	}
}

func TestSaveRecordSQLiteBackend(t *testing.T) {
	tmp := t.TempDir()
	config.AppConfig.StoreBackend = "sqlite"
	config.AppConfig.SQLitePath = filepath.Join(tmp, "data", "media_repurposer.db")

	resetSQLiteForTest(t)
	t.Cleanup(func() {
		resetSQLiteForTest(t)
		config.AppConfig.StoreBackend = "file"
	})

	if err := Init(context.Background()); err != nil {
		t.Fatalf("Init err: %v", err)
	}
	if err := SaveRecord(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("SaveRecord err: %v", err)
	}

	db, err := sqliteDB()
	if err != nil {
		t.Fatalf("sqliteDB err: %v", err)
	}
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM resolutions WHERE platform=?`, "tiktok").Scan(&count); err != nil {
		t.Fatalf("query count err: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 resolution row, got %d", count)
	}
}

func TestSaveRecordXlsxBackend(t *testing.T) {
	tmp := t.TempDir()
	config.AppConfig.StoreBackend = "xlsx"
	config.AppConfig.DataDir = tmp
	t.Cleanup(func() { config.AppConfig.StoreBackend = "file" })

	if err := SaveRecord(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("SaveRecord err: %v", err)
	}
	if err := SaveRecord(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("SaveRecord second err: %v", err)
	}

	path := filepath.Join(tmp, historyFilename("xlsx"))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected workbook at %s: %v", path, err)
	}
}
