package mockpms

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/alex-user-go/hotelpms/internal/middleware"
	"github.com/alex-user-go/hotelpms/internal/obs"
	"github.com/alex-user-go/hotelpms/internal/ratelimit"
)

// Handler serves the mock PMS HTTP surface.
type Handler struct {
	store   *Store
	limiter *ratelimit.Limiter
	metrics *obs.Metrics
	apiKey  string
	logger  *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(
	store *Store,
	limiter *ratelimit.Limiter,
	metrics *obs.Metrics,
	apiKey string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:   store,
		limiter: limiter,
		metrics: metrics,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Register attaches the room routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /rooms/availability", h.Availability)
	mux.HandleFunc("GET /rooms/{id}", h.RoomInfo)
	mux.HandleFunc("POST /rooms/{id}/book", h.BookRoom)
}

// AvailabilityResponse is the availability endpoint envelope.
type AvailabilityResponse struct {
	Rooms     []Room `json:"rooms"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
}

// BookingResponse is the booking confirmation envelope.
type BookingResponse struct {
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at"`
}

// Availability handles GET /rooms/availability.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	if !h.authorized(w, r) {
		return
	}

	rooms := h.store.Rooms()
	available := 0
	for _, room := range rooms {
		if room.Status == "available" {
			available++
		}
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{
		Rooms:     rooms,
		Total:     len(rooms),
		Available: available,
	})
}

// RoomInfo handles GET /rooms/{id}.
func (h *Handler) RoomInfo(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	if !h.authorized(w, r) {
		return
	}

	room, ok := h.store.Room(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// BookRoom handles POST /rooms/{id}/book.
func (h *Handler) BookRoom(w http.ResponseWriter, r *http.Request) {
	h.metrics.IncRequests()
	requestID := middleware.RequestID(r.Context())

	if !h.authorized(w, r) {
		return
	}

	ip := ExtractIP(r)
	if !h.limiter.Allow(ip) {
		h.logger.Warn("rate limit exceeded", "request_id", requestID, "ip", ip)
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var guest map[string]any
	if err := json.NewDecoder(r.Body).Decode(&guest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name, _ := guest["name"].(string)
	if strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "guest name is required")
		return
	}

	roomID := r.PathValue("id")
	booking, err := h.store.Book(roomID, guest)
	switch {
	case errors.Is(err, ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "room not found")
		return
	case errors.Is(err, ErrRoomBooked):
		writeError(w, http.StatusConflict, "room already booked")
		return
	case err != nil:
		h.logger.Error("booking failed", "request_id", requestID, "room_id", roomID, "error", err)
		writeError(w, http.StatusInternalServerError, "booking failed")
		return
	}

	h.logger.Info("room booked",
		"request_id", requestID,
		"room_id", roomID,
		"booking_id", booking.BookingID,
		"guest", name,
	)

	writeJSON(w, http.StatusOK, BookingResponse{
		BookingID: booking.BookingID,
		RoomID:    booking.RoomID,
		Status:    "booked",
		ExpiresAt: booking.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// authorized verifies the bearer token and writes a 401 envelope on mismatch.
func (h *Handler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+h.apiKey {
		writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
		return false
	}
	return true
}

// ExtractIP extracts the client IP from the request.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
