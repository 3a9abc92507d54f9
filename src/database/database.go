package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/tobfolio/backend/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		generated_at TIMESTAMP NOT NULL,
		transaction_count INTEGER NOT NULL,
		total_eur TEXT NOT NULL,
		total_tob TEXT NOT NULL,
		excel_file TEXT NOT NULL,
		csv_file TEXT NOT NULL,
		markdown_file TEXT NOT NULL,
		result_json TEXT NOT NULL
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.", "databasePath", databasePath)
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}
