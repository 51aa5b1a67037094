package model

import (
	"time"

	"github.com/shopspring/decimal"

	"starhotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldGuestName     = "guest_name"
	FieldGuestPassport = "guest_passport"
	FieldGuestOrigin   = "guest_origin"
	FieldGuestContact  = "guest_contact"
	FieldBookingDate   = "booking_date"
	FieldGuestCheckIn  = "guest_check_in"
	FieldGuestCheckOut = "guest_check_out"
	FieldSubTotal      = "sub_total"
	FieldDeposit       = "deposit"
	FieldPayment       = "payment"
	FieldRefund        = "refund"
	FieldLateCheckout  = "late_checkout"
	FieldRemarks       = "remarks"
	FieldActive        = "active"
)

// Booking is the financial and guest record for one stay. Room attributes are
// snapshotted at creation time so later room edits never change what the
// guest agreed to pay. Bookings are never deleted.
type Booking struct {
	ID             int64           `db:"id"`
	RoomID         int64           `db:"room_id"`
	GuestName      string          `db:"guest_name"`
	GuestPassport  string          `db:"guest_passport"`
	GuestOrigin    string          `db:"guest_origin"`
	GuestContact   string          `db:"guest_contact"`
	EmergencyName  string          `db:"emergency_name"`
	EmergencyNo    string          `db:"emergency_no"`
	TotalGuest     int             `db:"total_guest"`
	StayDuration   int             `db:"stay_duration"`
	BookingDate    time.Time       `db:"booking_date"`
	GuestCheckIn   *time.Time      `db:"guest_check_in"`
	GuestCheckOut  *time.Time      `db:"guest_check_out"`
	RoomNo         string          `db:"room_no"`
	RoomType       string          `db:"room_type"`
	RoomLocation   string          `db:"room_location"`
	RoomPrice      decimal.Decimal `db:"room_price"`
	Breakfast      bool            `db:"breakfast"`
	BreakfastPrice decimal.Decimal `db:"breakfast_price"`
	SubTotal       decimal.Decimal `db:"sub_total"`
	Deposit        decimal.Decimal `db:"deposit"`
	Payment        decimal.Decimal `db:"payment"`
	Refund         decimal.Decimal `db:"refund"`
	LateCheckout   bool            `db:"late_checkout"`
	Remarks        string          `db:"remarks"`
	Active         bool            `db:"active"`
	model.Metadata
}

// TotalDue is the amount the guest must settle before check-in.
func (b Booking) TotalDue() decimal.Decimal {
	return b.SubTotal.Add(b.Deposit)
}

// IsPaid reports whether the booking is settled in full. Equality is exact;
// over- and underpayment both count as unpaid.
func (b Booking) IsPaid() bool {
	return b.Payment.Equal(b.TotalDue())
}

const (
	LogTableName  = "log_bookings"
	LogEntityName = "booking_log"

	LogFieldID        = "id"
	LogFieldBookingID = "booking_id"
)

// BookingLog is an append-only audit row for booking lifecycle events.
type BookingLog struct {
	ID        int64     `db:"id"`
	BookingID int64     `db:"booking_id"`
	RoomID    int64     `db:"room_id"`
	GuestName string    `db:"guest_name"`
	Action    string    `db:"action"`
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
