package model

import (
	"time"

	"github.com/shopspring/decimal"

	"starhotel/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID             = "id"
	FieldRoomShortName  = "room_short_name"
	FieldRoomLongName   = "room_long_name"
	FieldRoomType       = "room_type"
	FieldRoomLocation   = "room_location"
	FieldRoomPrice      = "room_price"
	FieldBreakfast      = "breakfast"
	FieldBreakfastPrice = "breakfast_price"
	FieldRoomStatus     = "room_status"
	FieldBookingID      = "booking_id"
	FieldActive         = "active"
)

// Status is the room lifecycle state. The set is closed; every mutation goes
// through the transition table below.
type Status string

const (
	StatusOpen         Status = "Open"
	StatusBooked       Status = "Booked"
	StatusOccupied     Status = "Occupied"
	StatusHousekeeping Status = "Housekeeping"
	StatusMaintenance  Status = "Maintenance"
)

// validTransitions is the full room status state machine. Open is the only
// re-entrant idle state; rooms cycle indefinitely.
var validTransitions = map[Status][]Status{
	StatusOpen:         {StatusBooked, StatusMaintenance, StatusHousekeeping},
	StatusBooked:       {StatusOccupied, StatusOpen},
	StatusOccupied:     {StatusHousekeeping},
	StatusHousekeeping: {StatusOpen, StatusMaintenance},
	StatusMaintenance:  {StatusOpen},
}

// AllStatuses lists every room status, for exhaustive iteration.
var AllStatuses = []Status{StatusOpen, StatusBooked, StatusOccupied, StatusHousekeeping, StatusMaintenance}

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	_, ok := validTransitions[s]

	return ok
}

// CanTransitionTo reports whether the state machine permits moving from s to
// target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}

	return false
}

// Room is the inventory aggregate. BookingID is non-zero only while the room
// is Booked or Occupied.
type Room struct {
	ID             int64           `db:"id"`
	RoomShortName  string          `db:"room_short_name"`
	RoomLongName   string          `db:"room_long_name"`
	RoomType       string          `db:"room_type"`
	RoomLocation   string          `db:"room_location"`
	RoomPrice      decimal.Decimal `db:"room_price"`
	Breakfast      bool            `db:"breakfast"`
	BreakfastPrice decimal.Decimal `db:"breakfast_price"`
	RoomStatus     Status          `db:"room_status"`
	BookingID      int64           `db:"booking_id"`
	Active         bool            `db:"active"`
	model.Metadata
}

const (
	LogTableName  = "log_rooms"
	LogEntityName = "room_log"

	LogFieldID     = "id"
	LogFieldRoomID = "room_id"
)

// RoomLog is an append-only audit row recording a single status transition.
// Rows are never mutated after insert.
type RoomLog struct {
	ID            int64     `db:"id"`
	RoomID        int64     `db:"room_id"`
	BookingID     int64     `db:"booking_id"`
	RoomShortName string    `db:"room_short_name"`
	RoomStatus    Status    `db:"room_status"`
	Action        string    `db:"action"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
}
