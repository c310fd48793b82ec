package migrations

import "database/sql"

// AddDonationIndexes indexes the two columns every view filters on: the
// friend foreign key and the effective donation date.
func AddDonationIndexes(db *sql.DB) error {
	_, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_donations_friend ON donations(Friend);`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_donations_edate ON donations(eDate);`)
	return err
}
