package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"donorledger/models"
	"donorledger/services"

	"github.com/gorilla/mux"
)

func GetDonations(w http.ResponseWriter, r *http.Request) {
	donations := services.ListDonations()
	respondJSON(w, http.StatusOK, donations)
}

func GetDonation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	donation := services.GetDonation(id)
	if donation == nil {
		respondError(w, http.StatusNotFound, "Donation not found")
		return
	}
	respondJSON(w, http.StatusOK, donation)
}

func AddDonation(w http.ResponseWriter, r *http.Request) {
	var input models.DonationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created := services.CreateDonation(input.Record(time.Now()))
	if created == nil {
		respondError(w, http.StatusInternalServerError, "Failed to create donation")
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func UpdateDonation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var input models.DonationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated := services.UpdateDonation(id, input.Record(time.Now()))
	if updated == nil {
		respondError(w, http.StatusInternalServerError, "Failed to update donation")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func DeleteDonation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if err := services.DeleteDonation(id); err != nil {
		log.Printf("Error deleting donation %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete donation")
		return
	}
	respondMessage(w, "Donation deleted successfully")
}
