package models

import "strconv"

// Friend is a donor record. The JSON field names are the external shape the
// frontend works with; the stored row uses the same names except that the id
// is a store-assigned integer.
type Friend struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	ChineseName string `json:"chineseName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
	DNS         bool   `json:"dns"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Notes       string `json:"notes"`
}

// FriendFromRow maps a stored row back to the external Friend shape.
func FriendFromRow(row map[string]interface{}) Friend {
	return Friend{
		ID:          strconv.FormatInt(rowInt(row, "id"), 10),
		FirstName:   rowString(row, "firstName"),
		LastName:    rowString(row, "lastName"),
		ChineseName: rowString(row, "chineseName"),
		Address:     rowString(row, "address"),
		City:        rowString(row, "city"),
		State:       rowString(row, "state"),
		Zipcode:     rowString(row, "zipcode"),
		DNS:         rowBool(row, "dns"),
		Phone:       rowString(row, "phone"),
		Email:       rowString(row, "email"),
		Country:     rowString(row, "country"),
		Notes:       rowString(row, "notes"),
	}
}

// Row maps the Friend to its stored shape. The id is intentionally left out:
// the store allocates it on insert, and updates address the row by id.
func (f Friend) Row() map[string]interface{} {
	return map[string]interface{}{
		"firstName":   f.FirstName,
		"lastName":    f.LastName,
		"chineseName": f.ChineseName,
		"address":     f.Address,
		"city":        f.City,
		"state":       f.State,
		"zipcode":     f.Zipcode,
		"dns":         f.DNS,
		"phone":       f.Phone,
		"email":       f.Email,
		"country":     f.Country,
		"notes":       f.Notes,
	}
}
