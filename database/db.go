package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

// DB is nil when DB_URL is not configured; callers must check before use.
var DB *sql.DB

func InitDB(url string) error {
	if url == "" {
		log.Println("[DB] ⚠ DB_URL not set, running without verdict statistics")
		return nil
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("database unreachable: %w", err)
	}

	// Only aggregate counters are kept; submitted text is never written.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS verdict_stats (
			model           TEXT NOT NULL,
			verdict         TEXT NOT NULL,
			total           INTEGER NOT NULL DEFAULT 0,
			confidence_sum  DOUBLE PRECISION NOT NULL DEFAULT 0,
			last_seen_at    TIMESTAMPTZ DEFAULT NOW(),
			PRIMARY KEY (model, verdict)
		)
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("create verdict_stats: %w", err)
	}

	DB = db
	log.Println("[DB] ✓ connected to PostgreSQL")
	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}
