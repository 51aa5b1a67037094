package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"starhotel/config"
	"starhotel/infras/kafka"
	"starhotel/infras/otel"
	bookingModel "starhotel/internal/domains/booking/model"
	bookingRepository "starhotel/internal/domains/booking/repository"
	"starhotel/internal/domains/dashboard/model/dto"
	roomModel "starhotel/internal/domains/room/model"
	roomRepository "starhotel/internal/domains/room/repository"
	"starhotel/shared/clock"
	"starhotel/shared/constant"
	gDto "starhotel/shared/dto"
)

type Dashboard interface {
	Snapshot(ctx context.Context) (dto.SnapshotResponse, error)
	Broadcast(ctx context.Context)
}

type serviceImpl struct {
	roomRepo    roomRepository.Room
	bookingRepo bookingRepository.Booking
	notifier    kafka.Client
	cfg         *config.Config
	otel        otel.Otel
	clock       clock.Clock
}

func New(
	roomRepo roomRepository.Room,
	bookingRepo bookingRepository.Booking,
	notifier kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
	clock clock.Clock,
) Dashboard {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		cfg:         cfg,
		otel:        otel,
		clock:       clock,
	}
}

// Snapshot computes the front-desk overview: per-status counts of the active
// inventory plus alerts for overdue arrivals and departures. Nothing is
// cached; alerts depend on the clock.
func (s *serviceImpl) Snapshot(ctx context.Context) (res dto.SnapshotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Snapshot")
	defer scope.End()
	defer scope.TraceIfError(err)

	activeFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
		},
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, activeFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	now := s.clock.Now()
	res.GeneratedAt = now
	res.TotalRooms = len(rooms)
	res.Alerts = []dto.RoomAlert{}

	bookings, err := s.bookingsByID(ctx, rooms)
	if err != nil {
		return res, err
	}

	for _, room := range rooms {
		res.Counts.Add(room.RoomStatus)

		alert, ok := s.alertFor(room, bookings, now)
		if ok {
			res.Alerts = append(res.Alerts, alert)
		}
	}

	return res, nil
}

// Broadcast publishes the current snapshot to the notifier topic. It is
// fire-and-forget: failures are logged and never surface to the caller, so a
// broken broker cannot fail a front-desk mutation.
func (s *serviceImpl) Broadcast(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		snapshot, err := s.Snapshot(c)
		if err != nil {
			log.Error().Err(err).Msg("failed to build dashboard snapshot for broadcast")

			return
		}

		message := kafka.Message{
			Key:   snapshot.GeneratedAt.Format(time.RFC3339),
			Value: snapshot,
		}

		if err := s.notifier.SendMessages(c, s.cfg.Kafka.DashboardTopic, message); err != nil {
			log.Error().Err(err).Msg("failed to broadcast dashboard snapshot")
		}
	}()
}

// bookingsByID loads the bookings referenced by Booked and Occupied rooms in
// one query.
func (s *serviceImpl) bookingsByID(ctx context.Context, rooms []roomModel.Room) (map[int64]bookingModel.Booking, error) {
	ids := make([]int64, 0, len(rooms))

	for _, room := range rooms {
		if room.BookingID != 0 && (room.RoomStatus == roomModel.StatusBooked || room.RoomStatus == roomModel.StatusOccupied) {
			ids = append(ids, room.BookingID)
		}
	}

	bookings := make(map[int64]bookingModel.Booking, len(ids))

	if len(ids) == 0 {
		return bookings, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    bookingModel.TableName,
			},
		},
	}

	models, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	for _, b := range models {
		bookings[b.ID] = b
	}

	return bookings, nil
}

func (s *serviceImpl) alertFor(room roomModel.Room, bookings map[int64]bookingModel.Booking, now time.Time) (dto.RoomAlert, bool) {
	booking, ok := bookings[room.BookingID]
	if !ok {
		return dto.RoomAlert{}, false
	}

	alert := dto.RoomAlert{
		RoomID:     room.ID,
		RoomNo:     room.RoomShortName,
		RoomStatus: room.RoomStatus,
		BookingID:  booking.ID,
		GuestName:  booking.GuestName,
	}

	switch room.RoomStatus {
	case roomModel.StatusBooked:
		// While the room is Booked, guest_check_in still holds the expected
		// arrival time; the actual check-in moves the room to Occupied.
		if booking.GuestCheckIn != nil && now.After(*booking.GuestCheckIn) {
			alert.Due = *booking.GuestCheckIn
			alert.Reason = dto.AlertReasonOverdueCheckIn

			return alert, true
		}
	case roomModel.StatusOccupied:
		// While the room is Occupied, guest_check_out still holds the
		// expected departure time.
		if booking.GuestCheckOut != nil && now.After(*booking.GuestCheckOut) {
			alert.Due = *booking.GuestCheckOut
			alert.Reason = dto.AlertReasonOverdueCheckOut

			return alert, true
		}
	}

	return dto.RoomAlert{}, false
}
