package database

import (
	"errors"
	"os"
	"testing"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	os.Setenv("TEST_DB", "1")
	if err := InitDB(); err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() {
		DB.Close()
	})
}

func friendRow(first, last string) Row {
	return Row{
		"firstName": first,
		"lastName":  last,
		"address":   "12 Elm St",
		"city":      "Durham",
		"dns":       false,
	}
}

func TestInsertAssignsID(t *testing.T) {
	setupTestDB(t)

	row, err := Insert(CollectionFriends, friendRow("Grace", "Chen"))
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if row["id"] != int64(1) {
		t.Errorf("expected id 1, got %v", row["id"])
	}
	if row["firstName"] != "Grace" {
		t.Errorf("payload not stored: %v", row["firstName"])
	}

	row, err = Insert(CollectionFriends, friendRow("Ben", "Wu"))
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if row["id"] != int64(2) {
		t.Errorf("expected id 2, got %v", row["id"])
	}
}

func TestInsertExplicitIDConflict(t *testing.T) {
	setupTestDB(t)

	payload := friendRow("Grace", "Chen")
	payload["id"] = int64(7)
	if _, err := Insert(CollectionFriends, payload); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	_, err := Insert(CollectionFriends, payload)
	if err == nil {
		t.Fatal("expected conflict on duplicate id")
	}
	if !IsConflict(err) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestFetchOneNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := FetchOne(CollectionFriends, "42")
	if err == nil {
		t.Fatal("expected error for missing row")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestFetchAllEmpty(t *testing.T) {
	setupTestDB(t)

	rows, err := FetchAll(CollectionDonations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestUpdateByIDRoundTrip(t *testing.T) {
	setupTestDB(t)

	if _, err := Insert(CollectionFriends, friendRow("Grace", "Chen")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	payload := friendRow("Grace", "Chen")
	payload["city"] = "Raleigh"
	payload["id"] = int64(99) // id in the payload is ignored

	row, err := UpdateByID(CollectionFriends, "1", payload)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if row["id"] != int64(1) {
		t.Errorf("id changed on update: %v", row["id"])
	}
	if row["city"] != "Raleigh" {
		t.Errorf("update not stored: %v", row["city"])
	}
	if row["firstName"] != "Grace" {
		t.Errorf("unchanged field lost: %v", row["firstName"])
	}
}

func TestUpdateByIDMissing(t *testing.T) {
	setupTestDB(t)

	_, err := UpdateByID(CollectionFriends, "42", friendRow("Nobody", "Here"))
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestDeleteByIDMissingIsSilent(t *testing.T) {
	setupTestDB(t)

	if _, err := Insert(CollectionFriends, friendRow("Grace", "Chen")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := DeleteByID(CollectionFriends, "42"); err != nil {
		t.Errorf("expected silent success, got %v", err)
	}

	rows, err := FetchAll(CollectionFriends)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("existing rows disturbed: %d", len(rows))
	}

	if err := DeleteByID(CollectionFriends, "1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := FetchOne(CollectionFriends, "1"); !IsNotFound(err) {
		t.Errorf("row still present after delete: %v", err)
	}
}

func TestUnknownCollection(t *testing.T) {
	setupTestDB(t)

	_, err := FetchAll("users")
	if !errors.Is(err, ErrBadCollection) {
		t.Errorf("expected bad-collection error, got %v", err)
	}

	_, err = Insert("users; DROP TABLE donations", Row{"a": 1})
	if !errors.Is(err, ErrBadCollection) {
		t.Errorf("expected bad-collection error, got %v", err)
	}
}

func TestInsertBadColumn(t *testing.T) {
	setupTestDB(t)

	_, err := Insert(CollectionFriends, Row{"first name; --": "x"})
	if !errors.Is(err, ErrBadColumn) {
		t.Errorf("expected bad-column error, got %v", err)
	}
}

func TestQuotedKeywordColumn(t *testing.T) {
	setupTestDB(t)

	// The Check column is a SQL keyword and must survive quoting.
	row, err := Insert(CollectionDonations, Row{
		"created_at": "2024-03-14T09:00:00Z",
		"Friend":     int64(1),
		"eDate":      "2024-03-14",
		"Type":       "Other",
		"Check":      "1007",
		"Amount":     10.5,
		"Pledge":     nil,
		"Notes":      nil,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if row["Check"] != "1007" {
		t.Errorf("Check column not stored: %v", row["Check"])
	}
	if row["Pledge"] != nil {
		t.Errorf("expected null pledge, got %v", row["Pledge"])
	}
}
