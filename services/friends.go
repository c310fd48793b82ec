package services

import (
	"log"

	"donorledger/database"
	"donorledger/models"
)

// Friend repository. Read and write failures are swallowed into empty/nil
// results and logged; only delete failures propagate to the caller. That is
// the failure policy the views rely on: a dead backend renders as an empty
// list, not an error page.

// ListFriends returns all friends, or an empty list if the store fails.
func ListFriends() []models.Friend {
	rows, err := database.FetchAll(database.CollectionFriends)
	if err != nil {
		log.Printf("Error fetching friends: %v", err)
		return []models.Friend{}
	}

	friends := make([]models.Friend, 0, len(rows))
	for _, row := range rows {
		friends = append(friends, models.FriendFromRow(row))
	}
	return friends
}

// GetFriend returns the friend with the given id, or nil if it does not
// exist or the store fails. The two cases are indistinguishable here.
func GetFriend(id string) *models.Friend {
	row, err := database.FetchOne(database.CollectionFriends, id)
	if err != nil {
		log.Printf("Error fetching friend: %v", err)
		return nil
	}

	f := models.FriendFromRow(row)
	return &f
}

// CreateFriend inserts a new friend and returns it with the id the store's
// own sequence assigned. Any id on the input is ignored.
func CreateFriend(f models.Friend) *models.Friend {
	row, err := database.Insert(database.CollectionFriends, f.Row())
	if err != nil {
		log.Printf("Error creating friend: %v", err)
		return nil
	}

	created := models.FriendFromRow(row)
	return &created
}

// UpdateFriend replaces the stored fields of the friend with the given id
// and returns the updated record.
func UpdateFriend(id string, f models.Friend) *models.Friend {
	row, err := database.UpdateByID(database.CollectionFriends, id, f.Row())
	if err != nil {
		log.Printf("Error updating friend: %v", err)
		return nil
	}

	updated := models.FriendFromRow(row)
	return &updated
}

// DeleteFriend removes the friend. Unlike the read paths, a store failure
// here is returned to the caller. Donations referencing the deleted friend
// are left in place.
func DeleteFriend(id string) error {
	if err := database.DeleteByID(database.CollectionFriends, id); err != nil {
		log.Printf("Error deleting friend: %v", err)
		return err
	}
	return nil
}
