package mockpms_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alex-user-go/hotelpms/internal/mockpms"
)

func testRooms() []mockpms.Room {
	return []mockpms.Room{
		{RoomID: "101", Type: "standard", Currency: "EUR", Price: 80},
		{RoomID: "201", Type: "deluxe", Currency: "EUR", Price: 140},
	}
}

func TestStore_Rooms_SortedAndAvailable(t *testing.T) {
	store := mockpms.NewStore(testRooms(), time.Minute)
	defer store.Close()

	rooms := store.Rooms()
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if rooms[0].RoomID != "101" || rooms[1].RoomID != "201" {
		t.Errorf("expected rooms sorted by ID, got %v", rooms)
	}
	for _, r := range rooms {
		if r.Status != "available" {
			t.Errorf("expected room %s available, got %q", r.RoomID, r.Status)
		}
	}
}

func TestStore_Book(t *testing.T) {
	store := mockpms.NewStore(testRooms(), time.Minute)
	defer store.Close()

	booking, err := store.Book("101", map[string]any{"name": "Ivan"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.BookingID == "" {
		t.Error("expected a booking ID")
	}
	if booking.RoomID != "101" {
		t.Errorf("expected room 101, got %q", booking.RoomID)
	}

	room, ok := store.Room("101")
	if !ok {
		t.Fatal("expected room 101 to exist")
	}
	if room.Status != "booked" {
		t.Errorf("expected room booked, got %q", room.Status)
	}
}

func TestStore_Book_Conflicts(t *testing.T) {
	store := mockpms.NewStore(testRooms(), time.Minute)
	defer store.Close()

	if _, err := store.Book("101", map[string]any{"name": "Ivan"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Book("101", map[string]any{"name": "Anna"}); !errors.Is(err, mockpms.ErrRoomBooked) {
		t.Errorf("expected ErrRoomBooked, got %v", err)
	}

	if _, err := store.Book("999", map[string]any{"name": "Anna"}); !errors.Is(err, mockpms.ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestStore_ExpiredHoldFreesRoom(t *testing.T) {
	store := mockpms.NewStore(testRooms(), 20*time.Millisecond)
	defer store.Close()

	if _, err := store.Book("101", map[string]any{"name": "Ivan"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	room, _ := store.Room("101")
	if room.Status != "available" {
		t.Errorf("expected expired hold to free the room, got %q", room.Status)
	}

	if _, err := store.Book("101", map[string]any{"name": "Anna"}); err != nil {
		t.Errorf("expected rebooking after expiry to succeed, got %v", err)
	}
}
