package services

import (
	"testing"
	"time"

	"donorledger/models"
)

func TestCreateAndGetDonation(t *testing.T) {
	setupTestDB(t)

	notes := "spring concert"
	created := CreateDonation(models.Donation{
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Friend:    1,
		EDate:     "2024-03-14",
		Type:      models.DonationTypeLoveOffering,
		Check:     "1007",
		Amount:    100.5,
		Notes:     &notes,
	})
	if created == nil {
		t.Fatal("failed to create donation")
	}
	if created.ID != "1" {
		t.Errorf("expected id 1, got %s", created.ID)
	}

	got := GetDonation(created.ID)
	if got == nil {
		t.Fatal("failed to fetch donation")
	}
	if got.Friend != 1 || got.EDate != "2024-03-14" || got.Amount != 100.5 {
		t.Errorf("fetched donation does not match: %+v", got)
	}
	if got.Notes == nil || *got.Notes != "spring concert" {
		t.Errorf("notes lost: %v", got.Notes)
	}
	if got.Pledge != nil {
		t.Errorf("expected null pledge, got %v", *got.Pledge)
	}
}

func TestUpdateDonationRestampsCreatedAt(t *testing.T) {
	setupTestDB(t)

	created := CreateDonation(models.DonationInput{
		Date:        "2024-03-14",
		CheckNumber: "1007",
	}.Record(time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)))
	if created == nil {
		t.Fatal("failed to create donation")
	}

	// Edits rebuild the whole record, so created_at moves with them.
	updated := UpdateDonation(created.ID, models.DonationInput{
		Date:        "2024-03-15",
		CheckNumber: "1008",
	}.Record(time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC)))
	if updated == nil {
		t.Fatal("update failed")
	}
	if updated.CreatedAt == created.CreatedAt {
		t.Error("expected created_at to be restamped on update")
	}
	if updated.EDate != "2024-03-15" || updated.Check != "1008" {
		t.Errorf("update did not stick: %+v", updated)
	}
}

func TestDeleteDonationMissingIsSilent(t *testing.T) {
	setupTestDB(t)

	if err := DeleteDonation("42"); err != nil {
		t.Errorf("expected silent success, got %v", err)
	}
}

func TestListDonationsByFriend(t *testing.T) {
	setupTestDB(t)

	for _, d := range []models.Donation{
		{Friend: 1, EDate: "2024-01-15", Amount: 10},
		{Friend: 2, EDate: "2024-02-01", Amount: 99},
		{Friend: 1, EDate: "2024-06-20", Amount: 20},
	} {
		if CreateDonation(d) == nil {
			t.Fatal("failed to create donation")
		}
	}

	donations, err := ListDonationsByFriend("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(donations) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(donations))
	}
	if donations[0].EDate != "2024-06-20" || donations[1].EDate != "2024-01-15" {
		t.Errorf("donations not sorted newest first: %s, %s", donations[0].EDate, donations[1].EDate)
	}

	// A friend with no donations gets an empty list, not an error.
	donations, err = ListDonationsByFriend("9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(donations) != 0 {
		t.Errorf("expected no donations, got %d", len(donations))
	}
}
