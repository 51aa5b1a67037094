package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"starhotel/internal/domains/booking/model"
	companyModel "starhotel/internal/domains/company/model"
	"starhotel/shared"
)

type CreateBookingRequest struct {
	RoomID        int64            `json:"room_id"        validate:"required,gt=0"`
	GuestName     string           `json:"guest_name"     validate:"required,max=100"`
	GuestPassport string           `json:"guest_passport" validate:"required,max=50"`
	GuestOrigin   string           `json:"guest_origin"   validate:"omitempty,max=50"`
	GuestContact  string           `json:"guest_contact"  validate:"omitempty,max=50"`
	EmergencyName string           `json:"emergency_name" validate:"omitempty,max=100"`
	EmergencyNo   string           `json:"emergency_no"   validate:"omitempty,max=50"`
	TotalGuest    int              `json:"total_guest"    validate:"required,gte=1"`
	StayDuration  int              `json:"stay_duration"  validate:"required,gte=1"`
	BookingDate   time.Time        `json:"booking_date"`
	GuestCheckIn  time.Time        `json:"guest_check_in"  validate:"required"`
	GuestCheckOut time.Time        `json:"guest_check_out" validate:"required"`
	Deposit       *decimal.Decimal `json:"deposit"        validate:"omitempty"`
	Remarks       string           `json:"remarks"        validate:"omitempty,max=255"`
}

type PaymentRequest struct {
	Payment decimal.Decimal  `json:"payment" validate:"required"`
	Deposit *decimal.Decimal `json:"deposit" validate:"omitempty"`
	Refund  *decimal.Decimal `json:"refund"  validate:"omitempty"`
}

type CheckOutRequest struct {
	CheckOutTime time.Time        `json:"check_out_time"`
	Refund       *decimal.Decimal `json:"refund" validate:"omitempty"`
}

type BookingResponse struct {
	ID             int64           `json:"id"`
	RoomID         int64           `json:"room_id"`
	GuestName      string          `json:"guest_name"`
	GuestPassport  string          `json:"guest_passport"`
	GuestOrigin    string          `json:"guest_origin"`
	GuestContact   string          `json:"guest_contact"`
	EmergencyName  string          `json:"emergency_name"`
	EmergencyNo    string          `json:"emergency_no"`
	TotalGuest     int             `json:"total_guest"`
	StayDuration   int             `json:"stay_duration"`
	BookingDate    time.Time       `json:"booking_date"`
	GuestCheckIn   *time.Time      `json:"guest_check_in"`
	GuestCheckOut  *time.Time      `json:"guest_check_out"`
	RoomNo         string          `json:"room_no"`
	RoomType       string          `json:"room_type"`
	RoomLocation   string          `json:"room_location"`
	RoomPrice      decimal.Decimal `json:"room_price"`
	Breakfast      bool            `json:"breakfast"`
	BreakfastPrice decimal.Decimal `json:"breakfast_price"`
	SubTotal       decimal.Decimal `json:"sub_total"`
	Deposit        decimal.Decimal `json:"deposit"`
	Payment        decimal.Decimal `json:"payment"`
	Refund         decimal.Decimal `json:"refund"`
	TotalDue       decimal.Decimal `json:"total_due"`
	Paid           bool            `json:"paid"`
	LateCheckout   bool            `json:"late_checkout"`
	Remarks        string          `json:"remarks"`
	Active         bool            `json:"active"`
}

func (r *BookingResponse) FromModel(b model.Booking) {
	r.ID = b.ID
	r.RoomID = b.RoomID
	r.GuestName = b.GuestName
	r.GuestPassport = b.GuestPassport
	r.GuestOrigin = b.GuestOrigin
	r.GuestContact = b.GuestContact
	r.EmergencyName = b.EmergencyName
	r.EmergencyNo = b.EmergencyNo
	r.TotalGuest = b.TotalGuest
	r.StayDuration = b.StayDuration
	r.BookingDate = b.BookingDate
	r.GuestCheckIn = b.GuestCheckIn
	r.GuestCheckOut = b.GuestCheckOut
	r.RoomNo = b.RoomNo
	r.RoomType = b.RoomType
	r.RoomLocation = b.RoomLocation
	r.RoomPrice = b.RoomPrice
	r.Breakfast = b.Breakfast
	r.BreakfastPrice = b.BreakfastPrice
	r.SubTotal = b.SubTotal
	r.Deposit = b.Deposit
	r.Payment = b.Payment
	r.Refund = b.Refund
	r.TotalDue = b.TotalDue()
	r.Paid = b.IsPaid()
	r.LateCheckout = b.LateCheckout
	r.Remarks = b.Remarks
	r.Active = b.Active
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	Total     int               `json:"total"`
	TotalPage int               `json:"total_page"`
}

func (g *GetBookingsResponse) FromModels(bookings []model.Booking, total, limit int) {
	g.Bookings = make([]BookingResponse, 0, len(bookings))

	for _, b := range bookings {
		res := BookingResponse{}
		res.FromModel(b)
		g.Bookings = append(g.Bookings, res)
	}

	g.Total = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}

// ReceiptResponse is the printable settlement summary for a stay.
type ReceiptResponse struct {
	BookingNo      string          `json:"booking_no"`
	CompanyName    string          `json:"company_name"`
	CompanyAddress string          `json:"company_address"`
	CompanyContact string          `json:"company_contact"`
	CurrencySymbol string          `json:"currency_symbol"`
	GuestName      string          `json:"guest_name"`
	GuestPassport  string          `json:"guest_passport"`
	RoomNo         string          `json:"room_no"`
	RoomType       string          `json:"room_type"`
	StayDuration   int             `json:"stay_duration"`
	GuestCheckIn   *time.Time      `json:"guest_check_in"`
	GuestCheckOut  *time.Time      `json:"guest_check_out"`
	RoomPrice      decimal.Decimal `json:"room_price"`
	SubTotal       decimal.Decimal `json:"sub_total"`
	Deposit        decimal.Decimal `json:"deposit"`
	Payment        decimal.Decimal `json:"payment"`
	Refund         decimal.Decimal `json:"refund"`
	Total          decimal.Decimal `json:"total"`
	LateCheckout   bool            `json:"late_checkout"`
}

func (r *ReceiptResponse) FromModels(b model.Booking, c companyModel.Company, bookingNo string) {
	r.BookingNo = bookingNo
	r.CompanyName = c.CompanyName
	r.CompanyAddress = c.CompanyAddress
	r.CompanyContact = c.CompanyContact
	r.CurrencySymbol = c.CurrencySymbol
	r.GuestName = b.GuestName
	r.GuestPassport = b.GuestPassport
	r.RoomNo = b.RoomNo
	r.RoomType = b.RoomType
	r.StayDuration = b.StayDuration
	r.GuestCheckIn = b.GuestCheckIn
	r.GuestCheckOut = b.GuestCheckOut
	r.RoomPrice = b.RoomPrice
	r.SubTotal = b.SubTotal
	r.Deposit = b.Deposit
	r.Payment = b.Payment
	r.Refund = b.Refund
	r.Total = b.Payment.Sub(b.Refund)
	r.LateCheckout = b.LateCheckout
}
