package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations executes all migrations in order, recording each one so it
// only ever runs once per database.
func RunMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations := []struct {
		name string
		fn   func(*sql.DB) error
	}{
		{"add_donation_indexes", AddDonationIndexes},
		// For development and PR environments, also seed sample data
		{"seed_sample_data", SeedSampleData},
	}

	for _, migration := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = ?", migration.name).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}

		if count > 0 {
			log.Printf("Skipping already applied migration: %s", migration.name)
			continue
		}

		log.Printf("Applying migration: %s", migration.name)
		if err := migration.fn(db); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.name, err)
		}

		if _, err := db.Exec("INSERT INTO migrations (name) VALUES (?)", migration.name); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
	}

	return nil
}
