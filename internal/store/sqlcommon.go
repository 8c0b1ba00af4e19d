package store

import (
	"database/sql"
	"strings"

	"media-repurposer-go/internal/config"
)

type backendKindT string

const (
	backendFile     backendKindT = "file"
	backendXLSX     backendKindT = "xlsx"
	backendSQLite   backendKindT = "sqlite"
	backendMySQL    backendKindT = "mysql"
	backendPostgres backendKindT = "postgres"
	backendMongoDB  backendKindT = "mongodb"
)

func backendKind() backendKindT {
	v := strings.ToLower(strings.TrimSpace(config.AppConfig.StoreBackend))
	switch v {
	case "sqlite":
		return backendSQLite
	case "mysql":
		return backendMySQL
	case "postgres", "postgresql":
		return backendPostgres
	case "mongodb", "mongo":
		return backendMongoDB
	case "xlsx":
		return backendXLSX
	default:
		return backendFile
	}
}

func setDBPoolDefaults(db *sql.DB, maxOpen int) {
	if db == nil {
		return
	}
	if maxOpen <= 0 {
		maxOpen = 4
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(0)
}
