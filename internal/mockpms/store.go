// Package mockpms implements an in-memory property-management system used as
// a local stand-in for the real 1C-Hotel API: room inventory, expiring
// booking holds, and the HTTP surface the client talks to.
package mockpms

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRoomNotFound is returned for an unknown room ID.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomBooked is returned when the room already has an active hold.
	ErrRoomBooked = errors.New("room already booked")
)

// Room is a bookable unit in the inventory.
type Room struct {
	RoomID   string  `json:"room_id"`
	Type     string  `json:"type"`
	Currency string  `json:"currency"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"` // "available" or "booked"
}

// Booking is a hold placed on a room. Holds expire after the store's TTL.
type Booking struct {
	BookingID string         `json:"booking_id"`
	RoomID    string         `json:"room_id"`
	Guest     map[string]any `json:"guest"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Store keeps room inventory and booking holds in memory.
type Store struct {
	mu       sync.RWMutex
	rooms    map[string]Room
	bookings map[string]Booking // keyed by room ID
	holdTTL  time.Duration
	done     chan struct{}
}

// NewStore creates a Store seeded with the given rooms. Holds placed through
// Book expire after holdTTL; a background sweep frees the room afterwards.
func NewStore(rooms []Room, holdTTL time.Duration) *Store {
	s := &Store{
		rooms:    make(map[string]Room, len(rooms)),
		bookings: make(map[string]Booking),
		holdTTL:  holdTTL,
		done:     make(chan struct{}),
	}

	for _, r := range rooms {
		if r.Status == "" {
			r.Status = "available"
		}
		s.rooms[r.RoomID] = r
	}

	go s.sweep()

	return s
}

// Close stops the background sweep goroutine.
func (s *Store) Close() {
	close(s.done)
}

// Rooms returns the inventory sorted by room ID.
func (s *Store) Rooms() []Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]Room, 0, len(s.rooms))
	for id, r := range s.rooms {
		r.Status = s.statusLocked(id)
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].RoomID < rooms[j].RoomID
	})

	return rooms
}

// Room returns a single room by ID.
func (s *Store) Room(id string) (Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return Room{}, false
	}
	r.Status = s.statusLocked(id)

	return r, true
}

// Book places a hold on a room for the given guest. An expired hold does not
// block a new booking.
func (s *Store) Book(roomID string, guest map[string]any) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return Booking{}, ErrRoomNotFound
	}

	if b, ok := s.bookings[roomID]; ok && time.Now().Before(b.ExpiresAt) {
		return Booking{}, ErrRoomBooked
	}

	booking := Booking{
		BookingID: uuid.New().String(),
		RoomID:    roomID,
		Guest:     guest,
		ExpiresAt: time.Now().Add(s.holdTTL),
	}
	s.bookings[roomID] = booking

	return booking, nil
}

// statusLocked derives the effective room status. Callers must hold at least
// a read lock.
func (s *Store) statusLocked(roomID string) string {
	if b, ok := s.bookings[roomID]; ok && time.Now().Before(b.ExpiresAt) {
		return "booked"
	}
	return "available"
}

// sweep periodically drops expired holds.
func (s *Store) sweep() {
	interval := s.holdTTL
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for id, b := range s.bookings {
				if now.After(b.ExpiresAt) {
					delete(s.bookings, id)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// DefaultRooms returns the inventory the mock server starts with.
func DefaultRooms() []Room {
	return []Room{
		{RoomID: "101", Type: "standard", Currency: "EUR", Price: 80},
		{RoomID: "102", Type: "standard", Currency: "EUR", Price: 80},
		{RoomID: "103", Type: "twin", Currency: "EUR", Price: 95},
		{RoomID: "201", Type: "deluxe", Currency: "EUR", Price: 140},
		{RoomID: "202", Type: "deluxe", Currency: "EUR", Price: 140},
		{RoomID: "301", Type: "suite", Currency: "EUR", Price: 260},
	}
}
