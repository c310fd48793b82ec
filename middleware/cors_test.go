package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://app.example.com"}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"listed origin", "http://localhost:3000", true},
		{"second listed origin", "https://app.example.com", true},
		{"unlisted origin", "https://evil.example.com", false},
		{"empty origin", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAllowedOrigin(tt.origin, allowed); got != tt.want {
				t.Errorf("isAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestGetAllowedOriginsFromEnv(t *testing.T) {
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	defer os.Unsetenv("CORS_ALLOWED_ORIGINS")

	origins := getAllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", origins)
	}
}

func TestGetAllowedOriginsDefault(t *testing.T) {
	os.Unsetenv("CORS_ALLOWED_ORIGINS")

	origins := getAllowedOrigins()
	if len(origins) != 2 || origins[0] != "http://localhost:3000" {
		t.Errorf("unexpected default origins: %v", origins)
	}
}

func TestEnableCORSPreflight(t *testing.T) {
	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the wrapped handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/api/friends", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("unexpected allow-origin header: %q", got)
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("allow-methods header missing")
	}
}

func TestEnableCORSUnknownOriginInProduction(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	defer os.Unsetenv("APP_ENV")

	handler := EnableCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/friends", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got == "https://evil.example.com" {
		t.Error("unknown origin echoed back in production mode")
	}
}
