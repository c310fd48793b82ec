package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"

	"donorledger/database"
	"donorledger/middleware"
)

// Define a constant for the test user ID that can be used across all tests
const TestUserID = "test-user-id"

// SetupTestDB initializes a fresh in-memory test database.
func SetupTestDB() {
	os.Setenv("TEST_DB", "1")
	if err := database.InitDB(); err != nil {
		panic(err)
	}
}

// CleanupTestDB closes the test database connection.
func CleanupTestDB() {
	if database.DB != nil {
		database.DB.Close()
	}
}

// SetupTestAuth adds authentication context to the request
func SetupTestAuth(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, TestUserID)
	return req.WithContext(ctx)
}

// NewAuthenticatedRequest creates a new HTTP request with a mock
// authenticated user and a JSON body when one is given.
func NewAuthenticatedRequest(method, url string, body interface{}) *http.Request {
	var req *http.Request

	if body != nil {
		buf, _ := json.Marshal(body)
		req = httptest.NewRequest(method, url, bytes.NewBuffer(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return SetupTestAuth(req)
}
