package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"starhotel/internal/domains/room/model"
	"starhotel/shared"
	gModel "starhotel/shared/model"
)

type CreateRoomRequest struct {
	RoomShortName  string          `json:"room_short_name" validate:"required,max=20"`
	RoomLongName   string          `json:"room_long_name"  validate:"omitempty,max=100"`
	RoomType       string          `json:"room_type"       validate:"required,max=50"`
	RoomLocation   string          `json:"room_location"   validate:"omitempty,max=50"`
	RoomPrice      decimal.Decimal `json:"room_price"      validate:"required"`
	Breakfast      bool            `json:"breakfast"`
	BreakfastPrice decimal.Decimal `json:"breakfast_price"`
}

func (c *CreateRoomRequest) ToModel(user string, now time.Time) model.Room {
	return model.Room{
		RoomShortName:  c.RoomShortName,
		RoomLongName:   c.RoomLongName,
		RoomType:       c.RoomType,
		RoomLocation:   c.RoomLocation,
		RoomPrice:      c.RoomPrice,
		Breakfast:      c.Breakfast,
		BreakfastPrice: c.BreakfastPrice,
		RoomStatus:     model.StatusOpen,
		BookingID:      0,
		Active:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomShortName  string           `db:"room_short_name" json:"room_short_name" validate:"omitempty,max=20"`
	RoomLongName   string           `db:"room_long_name"  json:"room_long_name"  validate:"omitempty,max=100"`
	RoomType       string           `db:"room_type"       json:"room_type"       validate:"omitempty,max=50"`
	RoomLocation   string           `db:"room_location"   json:"room_location"   validate:"omitempty,max=50"`
	RoomPrice      *decimal.Decimal `db:"room_price"      json:"room_price"      validate:"omitempty"`
	BreakfastPrice *decimal.Decimal `db:"breakfast_price" json:"breakfast_price" validate:"omitempty"`
}

type TransitionRequest struct {
	RoomStatus string `json:"room_status" validate:"required,oneof=Open Booked Occupied Housekeeping Maintenance"`
	BookingID  int64  `json:"booking_id"  validate:"omitempty,gte=0"`
}

type RoomResponse struct {
	ID             int64           `json:"id"`
	RoomShortName  string          `json:"room_short_name"`
	RoomLongName   string          `json:"room_long_name"`
	RoomType       string          `json:"room_type"`
	RoomLocation   string          `json:"room_location"`
	RoomPrice      decimal.Decimal `json:"room_price"`
	Breakfast      bool            `json:"breakfast"`
	BreakfastPrice decimal.Decimal `json:"breakfast_price"`
	RoomStatus     model.Status    `json:"room_status"`
	BookingID      int64           `json:"booking_id"`
	Active         bool            `json:"active"`
	Metadata       Metadata        `json:"metadata"`
}

type Metadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	CreatedBy  string    `json:"created_by"`
	ModifiedBy string    `json:"modified_by"`
}

func (r *RoomResponse) FromModel(room model.Room) {
	r.ID = room.ID
	r.RoomShortName = room.RoomShortName
	r.RoomLongName = room.RoomLongName
	r.RoomType = room.RoomType
	r.RoomLocation = room.RoomLocation
	r.RoomPrice = room.RoomPrice
	r.Breakfast = room.Breakfast
	r.BreakfastPrice = room.BreakfastPrice
	r.RoomStatus = room.RoomStatus
	r.BookingID = room.BookingID
	r.Active = room.Active
	r.Metadata = Metadata{
		CreatedAt:  room.CreatedAt,
		ModifiedAt: room.ModifiedAt,
		CreatedBy:  room.CreatedBy,
		ModifiedBy: room.ModifiedBy,
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	Total     int            `json:"total"`
	TotalPage int            `json:"total_page"`
}

func (g *GetRoomsResponse) FromModels(rooms []model.Room, total, limit int) {
	g.Rooms = make([]RoomResponse, 0, len(rooms))

	for _, room := range rooms {
		res := RoomResponse{}
		res.FromModel(room)
		g.Rooms = append(g.Rooms, res)
	}

	g.Total = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}
