package mockpms_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alex-user-go/hotelpms/internal/mockpms"
	"github.com/alex-user-go/hotelpms/internal/obs"
	"github.com/alex-user-go/hotelpms/internal/ratelimit"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := mockpms.NewStore(mockpms.DefaultRooms(), time.Minute)
	t.Cleanup(store.Close)

	limiter := ratelimit.New(100, time.Minute)
	t.Cleanup(limiter.Close)

	h := mockpms.NewHandler(store, limiter, obs.NewMetrics(logger), testAPIKey, logger)

	mux := http.NewServeMux()
	h.Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func doRequest(t *testing.T, method, url, token, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return resp, decoded
}

func TestHandler_RequiresBearerToken(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"availability", http.MethodGet, "/rooms/availability", ""},
		{"room info", http.MethodGet, "/rooms/101", ""},
		{"booking", http.MethodPost, "/rooms/101/book", `{"name": "Ivan"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, tt.method, srv.URL+tt.path, "", tt.body)
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", resp.StatusCode)
			}
			if body["error"] == nil {
				t.Error("expected an error envelope")
			}
		})
	}
}

func TestHandler_Availability(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/rooms/availability", testAPIKey, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	rooms, ok := body["rooms"].([]any)
	if !ok {
		t.Fatalf("expected rooms array, got %T", body["rooms"])
	}
	if len(rooms) == 0 {
		t.Fatal("expected a non-empty inventory")
	}
	if body["total"] != float64(len(rooms)) {
		t.Errorf("expected total %d, got %v", len(rooms), body["total"])
	}
	if body["available"] != body["total"] {
		t.Errorf("expected all rooms available initially, got %v of %v", body["available"], body["total"])
	}
}

func TestHandler_RoomInfo(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/rooms/101", testAPIKey, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["room_id"] != "101" {
		t.Errorf("expected room 101, got %v", body["room_id"])
	}
	if body["status"] != "available" {
		t.Errorf("expected available, got %v", body["status"])
	}

	resp, body = doRequest(t, http.MethodGet, srv.URL+"/rooms/999", testAPIKey, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown room, got %d", resp.StatusCode)
	}
	if body["error"] != "room not found" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestHandler_BookRoom(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/rooms/101/book", testAPIKey,
		`{"name": "Ivan", "email": "ivan@example.com"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["booking_id"] == "" || body["booking_id"] == nil {
		t.Error("expected a booking ID")
	}
	if body["room_id"] != "101" {
		t.Errorf("expected room 101, got %v", body["room_id"])
	}
	if body["status"] != "booked" {
		t.Errorf("expected status booked, got %v", body["status"])
	}

	// Second booking of the same room conflicts
	resp, _ = doRequest(t, http.MethodPost, srv.URL+"/rooms/101/book", testAPIKey,
		`{"name": "Anna"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 on double booking, got %d", resp.StatusCode)
	}

	// The booked room shows up in availability
	_, availability := doRequest(t, http.MethodGet, srv.URL+"/rooms/availability", testAPIKey, "")
	if availability["available"] != availability["total"].(float64)-1 {
		t.Errorf("expected one room fewer available, got %v of %v",
			availability["available"], availability["total"])
	}
}

func TestHandler_BookRoom_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{"missing name", "/rooms/101/book", `{"email": "x@example.com"}`, http.StatusBadRequest},
		{"blank name", "/rooms/101/book", `{"name": "   "}`, http.StatusBadRequest},
		{"invalid JSON", "/rooms/101/book", `{"name": `, http.StatusBadRequest},
		{"unknown room", "/rooms/999/book", `{"name": "Ivan"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doRequest(t, http.MethodPost, srv.URL+tt.path, testAPIKey, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestHandler_BookRoom_RateLimited(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := mockpms.NewStore(mockpms.DefaultRooms(), time.Minute)
	t.Cleanup(store.Close)

	limiter := ratelimit.New(1, time.Minute)
	t.Cleanup(limiter.Close)

	h := mockpms.NewHandler(store, limiter, obs.NewMetrics(logger), testAPIKey, logger)
	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/rooms/101/book", testAPIKey, `{"name": "Ivan"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected first booking to pass, got %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, http.MethodPost, srv.URL+"/rooms/102/book", testAPIKey, `{"name": "Ivan"}`)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429 once the bucket is drained, got %d", resp.StatusCode)
	}
}
