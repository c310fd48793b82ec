package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"donorledger/models"
	"donorledger/services"

	"github.com/gorilla/mux"
)

func GetFriends(w http.ResponseWriter, r *http.Request) {
	friends := services.ListFriends()
	respondJSON(w, http.StatusOK, friends)
}

func GetFriend(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	friend := services.GetFriend(id)
	if friend == nil {
		respondError(w, http.StatusNotFound, "Friend not found")
		return
	}
	respondJSON(w, http.StatusOK, friend)
}

func AddFriend(w http.ResponseWriter, r *http.Request) {
	var f models.Friend
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created := services.CreateFriend(f)
	if created == nil {
		respondError(w, http.StatusInternalServerError, "Failed to create friend")
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func UpdateFriend(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var f models.Friend
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated := services.UpdateFriend(id, f)
	if updated == nil {
		respondError(w, http.StatusInternalServerError, "Failed to update friend")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func DeleteFriend(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if err := services.DeleteFriend(id); err != nil {
		log.Printf("Error deleting friend %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to delete friend")
		return
	}
	respondMessage(w, "Friend deleted successfully")
}

// GetFriendDonations returns one friend's donations, newest first.
func GetFriendDonations(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	donations, err := services.ListDonationsByFriend(id)
	if err != nil {
		log.Printf("Error fetching donations for friend %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch donations for friend")
		return
	}
	respondJSON(w, http.StatusOK, donations)
}
