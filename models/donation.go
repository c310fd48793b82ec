package models

import (
	"strconv"
	"time"
)

// Donation type values accepted by the donation form.
const (
	DonationTypeBoughtCD     = "Bought CD"
	DonationTypeLoveOffering = "Love Offering"
	DonationTypeOther        = "Other"
)

// Donation is a single contribution event tied to one Friend. The mixed-case
// JSON names (Friend, eDate, Type, Check, Amount) are the legacy spreadsheet
// column names the store and the existing frontend both use.
type Donation struct {
	ID        string  `json:"id"`
	CreatedAt string  `json:"created_at"`
	Friend    int64   `json:"Friend"`
	EDate     string  `json:"eDate"`
	Type      string  `json:"Type"`
	Check     string  `json:"Check"`
	Amount    float64 `json:"Amount"`
	Pledge    *string `json:"Pledge"`
	Notes     *string `json:"Notes"`
}

// DonationInput accepts a donation payload in either naming convention: the
// form convention (date, friendId, donationType, checkNumber, amount, notes)
// or the storage convention (eDate, Friend, Type, Check, Amount, Notes).
// Both conventions exist in the wild, so the mapping is centralized here
// instead of being repeated in every handler.
type DonationInput struct {
	Date         string   `json:"date"`
	EDate        string   `json:"eDate"`
	FriendID     *int64   `json:"friendId"`
	Friend       *int64   `json:"Friend"`
	DonationType string   `json:"donationType"`
	Type         string   `json:"Type"`
	CheckNumber  string   `json:"checkNumber"`
	Check        string   `json:"Check"`
	Amount       *float64 `json:"amount"`
	AmountStore  *float64 `json:"Amount"`
	Notes        *string  `json:"notes"`
	NotesStore   *string  `json:"Notes"`
}

// Record collapses the input to the canonical Donation shape. The form
// convention wins when both are present. created_at is stamped with now, and
// Pledge is always forced to null; the field is vestigial.
func (in DonationInput) Record(now time.Time) Donation {
	d := Donation{
		CreatedAt: now.UTC().Format(time.RFC3339),
		Pledge:    nil,
	}

	d.EDate = in.Date
	if d.EDate == "" {
		d.EDate = in.EDate
	}

	if in.FriendID != nil {
		d.Friend = *in.FriendID
	} else if in.Friend != nil {
		d.Friend = *in.Friend
	}

	d.Type = in.DonationType
	if d.Type == "" {
		d.Type = in.Type
	}

	d.Check = in.CheckNumber
	if d.Check == "" {
		d.Check = in.Check
	}

	if in.Amount != nil {
		d.Amount = *in.Amount
	} else if in.AmountStore != nil {
		d.Amount = *in.AmountStore
	}

	if in.Notes != nil {
		d.Notes = in.Notes
	} else {
		d.Notes = in.NotesStore
	}

	return d
}

// DonationFromRow maps a stored row back to the external Donation shape.
func DonationFromRow(row map[string]interface{}) Donation {
	return Donation{
		ID:        strconv.FormatInt(rowInt(row, "id"), 10),
		CreatedAt: rowString(row, "created_at"),
		Friend:    rowInt(row, "Friend"),
		EDate:     rowString(row, "eDate"),
		Type:      rowString(row, "Type"),
		Check:     rowString(row, "Check"),
		Amount:    rowFloat(row, "Amount"),
		Pledge:    rowNullString(row, "Pledge"),
		Notes:     rowNullString(row, "Notes"),
	}
}

// Row maps the Donation to its stored shape, without the id.
func (d Donation) Row() map[string]interface{} {
	row := map[string]interface{}{
		"created_at": d.CreatedAt,
		"Friend":     d.Friend,
		"eDate":      d.EDate,
		"Type":       d.Type,
		"Check":      d.Check,
		"Amount":     d.Amount,
		"Pledge":     nil,
		"Notes":      nil,
	}
	if d.Pledge != nil {
		row["Pledge"] = *d.Pledge
	}
	if d.Notes != nil {
		row["Notes"] = *d.Notes
	}
	return row
}
