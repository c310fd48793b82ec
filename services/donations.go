package services

import (
	"log"

	"donorledger/database"
	"donorledger/models"
)

// ListDonations returns all donations, or an empty list if the store fails.
func ListDonations() []models.Donation {
	rows, err := database.FetchAll(database.CollectionDonations)
	if err != nil {
		log.Printf("Error fetching donations: %v", err)
		return []models.Donation{}
	}

	donations := make([]models.Donation, 0, len(rows))
	for _, row := range rows {
		donations = append(donations, models.DonationFromRow(row))
	}
	return donations
}

// GetDonation returns the donation with the given id, or nil if it does not
// exist or the store fails.
func GetDonation(id string) *models.Donation {
	row, err := database.FetchOne(database.CollectionDonations, id)
	if err != nil {
		log.Printf("Error fetching donation: %v", err)
		return nil
	}

	d := models.DonationFromRow(row)
	return &d
}

// CreateDonation inserts the canonical donation record the handler built via
// models.DonationInput.Record and returns it as stored. The id comes from
// the store's sequence.
func CreateDonation(d models.Donation) *models.Donation {
	row, err := database.Insert(database.CollectionDonations, d.Row())
	if err != nil {
		log.Printf("Error creating donation: %v", err)
		return nil
	}

	created := models.DonationFromRow(row)
	return &created
}

// UpdateDonation replaces the stored fields of the donation with the given
// id and returns the updated record.
func UpdateDonation(id string, d models.Donation) *models.Donation {
	row, err := database.UpdateByID(database.CollectionDonations, id, d.Row())
	if err != nil {
		log.Printf("Error updating donation: %v", err)
		return nil
	}

	updated := models.DonationFromRow(row)
	return &updated
}

// DeleteDonation removes the donation. Store failures propagate; deleting an
// id that never existed succeeds silently.
func DeleteDonation(id string) error {
	if err := database.DeleteByID(database.CollectionDonations, id); err != nil {
		log.Printf("Error deleting donation: %v", err)
		return err
	}
	return nil
}

// ListDonationsByFriend returns the donations for one friend, newest first.
// This path queries the store directly instead of going through the generic
// adapter so the filter and ordering happen server side.
func ListDonationsByFriend(friendID string) ([]models.Donation, error) {
	rows, err := database.DB.Queryx(
		`SELECT * FROM donations WHERE Friend = ? ORDER BY eDate DESC`, friendID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	donations := []models.Donation{}
	for rows.Next() {
		row := database.Row{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		donations = append(donations, models.DonationFromRow(row))
	}
	return donations, rows.Err()
}
