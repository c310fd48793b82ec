package database

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var DB *sqlx.DB

func InitDB() error {
	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// We're running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "donorledger.db")
	} else if os.Getenv("TEST_DB") == "1" {
		// We're running tests, use in-memory database
		dbPath = ":memory:"
	} else {
		// Local development
		dbPath = "./donorledger.db"
	}

	var err error
	// Add connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sqlx.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	if dbPath == ":memory:" {
		// Every pooled connection gets its own in-memory database, so the
		// test database must stay on a single connection.
		DB.SetMaxOpenConns(1)
	} else {
		DB.SetMaxOpenConns(5)
		DB.SetMaxIdleConns(5)
		DB.SetConnMaxLifetime(time.Minute * 5)

		_, err = DB.Exec("PRAGMA journal_mode=WAL;")
		if err != nil {
			return err
		}

		_, err = DB.Exec("PRAGMA busy_timeout=5000;")
		if err != nil {
			return err
		}
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return err
	}

	return createBaseSchema()
}

// createBaseSchema creates the two flat collections the application stores.
// The mixed-case donation columns mirror the legacy spreadsheet the data was
// imported from; "Check" needs quoting because it is an SQL keyword.
func createBaseSchema() error {
	createFriendsTable := `
	CREATE TABLE IF NOT EXISTS donation_friends (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		firstName TEXT NOT NULL DEFAULT '',
		lastName TEXT NOT NULL DEFAULT '',
		chineseName TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zipcode TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		dns BOOLEAN NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := DB.Exec(createFriendsTable)
	if err != nil {
		return err
	}

	// No foreign key on Friend: a friend can be deleted while donations still
	// reference its id, and the views tolerate the dangling reference.
	createDonationsTable := `
	CREATE TABLE IF NOT EXISTS donations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL DEFAULT '',
		Friend INTEGER NOT NULL DEFAULT 0,
		eDate TEXT NOT NULL DEFAULT '',
		Type TEXT NOT NULL DEFAULT '',
		"Check" TEXT NOT NULL DEFAULT '',
		Amount REAL NOT NULL DEFAULT 0,
		Pledge TEXT,
		Notes TEXT
	);
	`
	_, err = DB.Exec(createDonationsTable)
	return err
}
