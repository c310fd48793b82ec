package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"donorledger/services"
)

// reportYear reads the ?year= query parameter, defaulting to the last full
// calendar year.
func reportYear(r *http.Request) int {
	if y := r.URL.Query().Get("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			return year
		}
	}
	return services.DefaultReportYear()
}

// GetReceipts renders the year-end donation receipts as a printable HTML
// document, one page per donor.
func GetReceipts(w http.ResponseWriter, r *http.Request) {
	year := reportYear(r)

	donations := services.ListDonations()
	friends := services.ListFriends()

	content, err := services.GenerateReceiptsHTML(donations, friends, year)
	if err != nil {
		var noDonations *services.NoDonationsError
		if errors.As(err, &noDonations) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error generating receipts: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate receipts")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(services.PrintReceiptsDocument(content, year)))
}

// GetLabels renders the mailing labels for the year's donors as a printable
// HTML document laid out on Avery 5162 sheets.
func GetLabels(w http.ResponseWriter, r *http.Request) {
	year := reportYear(r)

	donations := services.ListDonations()
	friends := services.ListFriends()

	content, err := services.GenerateLabelsHTML(donations, friends, year)
	if err != nil {
		var noDonations *services.NoDonationsError
		if errors.As(err, &noDonations) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("Error generating labels: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate labels")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(services.PrintLabelsDocument(content, year)))
}
