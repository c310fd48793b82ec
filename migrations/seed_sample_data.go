package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"
)

// SeedSampleData seeds a handful of friends and donations for development
// and PR environments. This must never run in production.
func SeedSampleData(db *sql.DB) error {
	if os.Getenv("APP_ENV") == "production" {
		log.Println("Refusing to seed sample data in production environment")
		return nil
	}

	if os.Getenv("RESET_DB") != "true" &&
		os.Getenv("APP_ENV") != "development" &&
		os.Getenv("PR_DEPLOYMENT") != "true" {
		log.Println("Skipping sample data seeding - not explicitly requested and not in dev/PR environment")
		return nil
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM donation_friends").Scan(&count); err != nil {
		return fmt.Errorf("failed to check donation_friends: %w", err)
	}
	if count > 0 {
		log.Println("Skipping sample data seeding - friends already present")
		return nil
	}

	log.Println("Seeding sample data for development/PR environment...")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	friends := []struct {
		firstName, lastName, address, city, state, zipcode string
	}{
		{"Grace", "Chen", "1200 Maple Ave", "Diamond Bar", "CA", "91765"},
		{"David", "Lin", "88 Harbor Blvd", "Walnut", "CA", "91789"},
		{"Ruth", "Huang", "452 Sunset Dr", "Rowland Heights", "CA", "91748"},
	}
	for _, f := range friends {
		_, err = tx.Exec(`
			INSERT INTO donation_friends (firstName, lastName, address, city, state, zipcode)
			VALUES (?, ?, ?, ?, ?, ?)
		`, f.firstName, f.lastName, f.address, f.city, f.state, f.zipcode)
		if err != nil {
			return fmt.Errorf("failed to seed friend: %w", err)
		}
	}

	lastYear := time.Now().Year() - 1
	now := time.Now().UTC().Format(time.RFC3339)
	donations := []struct {
		friend int64
		eDate  string
		typ    string
		check  string
		amount float64
	}{
		{1, fmt.Sprintf("%d-03-14", lastYear), "Love Offering", "1007", 100.00},
		{1, fmt.Sprintf("%d-11-02", lastYear), "Love Offering", "paypal", 250.00},
		{2, fmt.Sprintf("%d-06-21", lastYear), "Bought CD", "zelle", 25.50},
		{3, fmt.Sprintf("%d-12-24", lastYear), "Other", "ACH90211", 500.00},
	}
	for _, d := range donations {
		_, err = tx.Exec(`
			INSERT INTO donations (created_at, Friend, eDate, Type, "Check", Amount)
			VALUES (?, ?, ?, ?, ?, ?)
		`, now, d.friend, d.eDate, d.typ, d.check, d.amount)
		if err != nil {
			return fmt.Errorf("failed to seed donation: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sample data: %w", err)
	}

	log.Println("Sample data seeded successfully")
	return nil
}
