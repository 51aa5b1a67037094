package dto

import (
	"time"

	roomModel "starhotel/internal/domains/room/model"
)

// StatusCounts breaks the active room inventory down by lifecycle state.
type StatusCounts struct {
	Open         int `json:"open"`
	Booked       int `json:"booked"`
	Occupied     int `json:"occupied"`
	Housekeeping int `json:"housekeeping"`
	Maintenance  int `json:"maintenance"`
}

// Add increments the counter for the given status.
func (c *StatusCounts) Add(status roomModel.Status) {
	switch status {
	case roomModel.StatusOpen:
		c.Open++
	case roomModel.StatusBooked:
		c.Booked++
	case roomModel.StatusOccupied:
		c.Occupied++
	case roomModel.StatusHousekeeping:
		c.Housekeeping++
	case roomModel.StatusMaintenance:
		c.Maintenance++
	}
}

const (
	AlertReasonOverdueCheckIn  = "overdue check-in"
	AlertReasonOverdueCheckOut = "overdue check-out"
)

// RoomAlert flags a room needing front-desk attention: a Booked room whose
// guest is overdue to arrive, or an Occupied room whose guest is overdue to
// leave.
type RoomAlert struct {
	RoomID     int64            `json:"room_id"`
	RoomNo     string           `json:"room_no"`
	RoomStatus roomModel.Status `json:"room_status"`
	BookingID  int64            `json:"booking_id"`
	GuestName  string           `json:"guest_name"`
	Due        time.Time        `json:"due"`
	Reason     string           `json:"reason"`
}

// SnapshotResponse is the front-desk overview. It is recomputed on every
// call; alerts depend on the current time and are never persisted.
type SnapshotResponse struct {
	Counts      StatusCounts `json:"counts"`
	TotalRooms  int          `json:"total_rooms"`
	Alerts      []RoomAlert  `json:"alerts"`
	GeneratedAt time.Time    `json:"generated_at"`
}
