package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"starhotel/config"
	"starhotel/infras/kafka"
	kafkaMocks "starhotel/infras/kafka/mocks"
	otelMocks "starhotel/infras/otel/mocks"
	bookingMocks "starhotel/internal/domains/booking/mocks"
	bookingModel "starhotel/internal/domains/booking/model"
	"starhotel/internal/domains/dashboard/model/dto"
	"starhotel/internal/domains/dashboard/service"
	roomMocks "starhotel/internal/domains/room/mocks"
	roomModel "starhotel/internal/domains/room/model"
	"starhotel/shared/clock"
)

var testNow = time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

type fixture struct {
	roomRepo    *roomMocks.MockRoom
	bookingRepo *bookingMocks.MockBooking
	notifier    *kafkaMocks.MockClient
	svc         service.Dashboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	roomRepo := roomMocks.NewMockRoom(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	notifier := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.DashboardTopic = "starhotel.dashboard"

	return &fixture{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		svc:         service.New(roomRepo, bookingRepo, notifier, cfg, otelMocks.NewOtel(), clock.Fixed(testNow)),
	}
}

func room(id int64, status roomModel.Status, bookingID int64) roomModel.Room {
	return roomModel.Room{
		ID:            id,
		RoomShortName: "101",
		RoomStatus:    status,
		BookingID:     bookingID,
		Active:        true,
	}
}

func TestDashboardService_Snapshot(t *testing.T) {
	t.Run("counts every status", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{
				room(1, roomModel.StatusOpen, 0),
				room(2, roomModel.StatusOpen, 0),
				room(3, roomModel.StatusHousekeeping, 0),
				room(4, roomModel.StatusMaintenance, 0),
			}, nil)

		res, err := f.svc.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, res.TotalRooms)
		assert.Equal(t, 2, res.Counts.Open)
		assert.Equal(t, 1, res.Counts.Housekeeping)
		assert.Equal(t, 1, res.Counts.Maintenance)
		assert.Empty(t, res.Alerts)
		assert.Equal(t, testNow, res.GeneratedAt)
	})

	t.Run("booked room past its expected arrival raises an arrival alert", func(t *testing.T) {
		f := newFixture(t)

		expectedArrival := testNow.Add(-1 * time.Hour)
		expectedDeparture := testNow.AddDate(0, 0, 3)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{room(1, roomModel.StatusBooked, 42)}, nil)
		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{{
				ID:            42,
				GuestName:     "John Carter",
				BookingDate:   testNow.AddDate(0, 0, -1),
				GuestCheckIn:  &expectedArrival,
				GuestCheckOut: &expectedDeparture,
			}}, nil)

		res, err := f.svc.Snapshot(context.Background())
		require.NoError(t, err)
		require.Len(t, res.Alerts, 1)
		assert.Equal(t, dto.AlertReasonOverdueCheckIn, res.Alerts[0].Reason)
		assert.Equal(t, "John Carter", res.Alerts[0].GuestName)
		assert.Equal(t, expectedArrival, res.Alerts[0].Due)
	})

	t.Run("fresh booking for a future arrival raises no alert", func(t *testing.T) {
		f := newFixture(t)

		expectedArrival := testNow.AddDate(0, 0, 2)
		expectedDeparture := testNow.AddDate(0, 0, 5)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{room(1, roomModel.StatusBooked, 42)}, nil)
		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{{
				ID:            42,
				GuestName:     "Future Guest",
				BookingDate:   testNow.Add(-1 * time.Minute),
				GuestCheckIn:  &expectedArrival,
				GuestCheckOut: &expectedDeparture,
			}}, nil)

		res, err := f.svc.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Empty(t, res.Alerts)
		assert.Equal(t, 1, res.Counts.Booked)
	})

	t.Run("occupied room past its expected departure raises a departure alert", func(t *testing.T) {
		f := newFixture(t)

		actualArrival := testNow.AddDate(0, 0, -4)
		expectedDeparture := testNow.AddDate(0, 0, -1)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{room(1, roomModel.StatusOccupied, 42)}, nil)
		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{{
				ID:            42,
				BookingDate:   testNow.AddDate(0, 0, -4),
				StayDuration:  3,
				GuestCheckIn:  &actualArrival,
				GuestCheckOut: &expectedDeparture,
			}}, nil)

		res, err := f.svc.Snapshot(context.Background())
		require.NoError(t, err)
		require.Len(t, res.Alerts, 1)
		assert.Equal(t, dto.AlertReasonOverdueCheckOut, res.Alerts[0].Reason)
		assert.Equal(t, expectedDeparture, res.Alerts[0].Due)
	})

	t.Run("on schedule stays raise no alerts", func(t *testing.T) {
		f := newFixture(t)

		futureArrival := testNow.AddDate(0, 0, 1)
		futureDeparture := testNow.AddDate(0, 0, 4)
		actualArrival := testNow.AddDate(0, 0, -1)
		expectedDeparture := testNow.AddDate(0, 0, 2)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{
				room(1, roomModel.StatusBooked, 41),
				room(2, roomModel.StatusOccupied, 42),
			}, nil)
		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				{ID: 41, BookingDate: testNow, GuestCheckIn: &futureArrival, GuestCheckOut: &futureDeparture},
				{ID: 42, BookingDate: testNow.AddDate(0, 0, -1), StayDuration: 3, GuestCheckIn: &actualArrival, GuestCheckOut: &expectedDeparture},
			}, nil)

		res, err := f.svc.Snapshot(context.Background())
		require.NoError(t, err)
		assert.Empty(t, res.Alerts)
		assert.Equal(t, 1, res.Counts.Booked)
		assert.Equal(t, 1, res.Counts.Occupied)
	})
}

func TestDashboardService_Broadcast(t *testing.T) {
	t.Run("publishes the snapshot to the notifier topic", func(t *testing.T) {
		f := newFixture(t)

		sent := make(chan string, 1)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{room(1, roomModel.StatusOpen, 0)}, nil)
		f.notifier.EXPECT().
			SendMessages(gomock.Any(), "starhotel.dashboard", gomock.Any()).
			DoAndReturn(func(_ context.Context, topic string, _ ...kafka.Message) error {
				sent <- topic
				return nil
			})

		f.svc.Broadcast(context.Background())

		select {
		case topic := <-sent:
			assert.Equal(t, "starhotel.dashboard", topic)
		case <-time.After(time.Second):
			t.Fatal("broadcast never reached the notifier")
		}
	})

	t.Run("notifier failure is swallowed", func(t *testing.T) {
		f := newFixture(t)

		sent := make(chan struct{}, 1)

		f.roomRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]roomModel.Room{}, nil)
		f.notifier.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ ...kafka.Message) error {
				sent <- struct{}{}
				return assert.AnError
			})

		f.svc.Broadcast(context.Background())

		select {
		case <-sent:
		case <-time.After(time.Second):
			t.Fatal("broadcast never reached the notifier")
		}
	})
}
