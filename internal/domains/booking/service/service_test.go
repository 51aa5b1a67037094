package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"starhotel/config"
	otelMocks "starhotel/infras/otel/mocks"
	pgMocks "starhotel/infras/postgres/mocks"
	bookingMocks "starhotel/internal/domains/booking/mocks"
	"starhotel/internal/domains/booking/model"
	"starhotel/internal/domains/booking/model/dto"
	"starhotel/internal/domains/booking/service"
	companyMocks "starhotel/internal/domains/company/mocks"
	companyModel "starhotel/internal/domains/company/model"
	roomModel "starhotel/internal/domains/room/model"
	roomRepoMocks "starhotel/internal/domains/room/mocks"
	roomSvcMocks "starhotel/internal/domains/room/service/mocks"
	cacheMocks "starhotel/shared/cache/mocks"
	"starhotel/shared/clock"
	"starhotel/shared/constant"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	repo        *bookingMocks.MockBooking
	logRepo     *bookingMocks.MockBookingLog
	roomRepo    *roomRepoMocks.MockRoom
	roomSvc     *roomSvcMocks.MockRoom
	companyRepo *companyMocks.MockCompany
	now         time.Time
	svc         service.Booking
}

func newFixture(t *testing.T) *fixture {
	return newFixtureAt(t, testNow)
}

func newFixtureAt(t *testing.T, now time.Time) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	logRepo := bookingMocks.NewMockBookingLog(ctrl)
	roomRepo := roomRepoMocks.NewMockRoom(ctrl)
	roomSvc := roomSvcMocks.NewMockRoom(ctrl)
	companyRepo := companyMocks.NewMockCompany(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 300
	cfg.Hotel.LateCheckoutHour = 14
	cfg.Hotel.DefaultDeposit = "20.00"

	return &fixture{
		repo:        repo,
		logRepo:     logRepo,
		roomRepo:    roomRepo,
		roomSvc:     roomSvc,
		companyRepo: companyRepo,
		now:         now,
		svc: service.New(
			repo, logRepo, roomRepo, roomSvc, companyRepo,
			pgMocks.NewTransactor(), cfg, mockCache, otelMocks.NewOtel(), clock.Fixed(now),
		),
	}
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "FRONTDESK")
}

func openRoom() roomModel.Room {
	return roomModel.Room{
		ID:            7,
		RoomShortName: "101",
		RoomType:      "Deluxe",
		RoomLocation:  "Level 1",
		RoomPrice:     mustDecimal("100.00"),
		RoomStatus:    roomModel.StatusOpen,
		Active:        true,
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:        7,
		GuestName:     "John Carter",
		GuestPassport: "A1234567",
		TotalGuest:    2,
		StayDuration:  3,
		GuestCheckIn:  testNow.Add(4 * time.Hour),
		GuestCheckOut: testNow.AddDate(0, 0, 3),
	}
}

func paidBooking(id int64) model.Booking {
	return model.Booking{
		ID:           id,
		RoomID:       7,
		GuestName:    "John Carter",
		RoomNo:       "101",
		RoomType:     "Deluxe",
		RoomPrice:    mustDecimal("100.00"),
		StayDuration: 3,
		SubTotal:     mustDecimal("300.00"),
		Deposit:      mustDecimal("20.00"),
		Payment:      mustDecimal("320.00"),
		Refund:       decimal.Zero,
		Active:       true,
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("creates booking and moves room to Booked", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openRoom(), nil)
		f.repo.EXPECT().
			InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, b model.Booking) (int64, error) {
				assert.True(t, b.SubTotal.Equal(mustDecimal("300.00")), "sub total should be stay duration times room price")
				assert.True(t, b.Deposit.Equal(mustDecimal("20.00")), "deposit should default from config")
				assert.True(t, b.Payment.IsZero())
				assert.Equal(t, "101", b.RoomNo)
				assert.Equal(t, "Deluxe", b.RoomType)
				require.NotNil(t, b.GuestCheckIn)
				require.NotNil(t, b.GuestCheckOut)
				assert.Equal(t, testNow.Add(4*time.Hour), *b.GuestCheckIn, "expected arrival should be persisted at creation")
				assert.Equal(t, testNow.AddDate(0, 0, 3), *b.GuestCheckOut, "expected departure should be persisted at creation")
				return 42, nil
			})
		f.roomSvc.EXPECT().
			TransitionTx(gomock.Any(), gomock.Any(), int64(7), roomModel.StatusBooked, int64(42)).
			Return(roomModel.Room{}, nil)
		f.logRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, entry model.BookingLog) error {
				assert.Equal(t, "Booking Created", entry.Action)
				assert.Equal(t, int64(42), entry.BookingID)
				return nil
			})

		res, err := f.svc.Create(testContext(), createRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
		assert.True(t, res.TotalDue.Equal(mustDecimal("320.00")))
		assert.False(t, res.Paid)
	})

	t.Run("explicit deposit overrides the default", func(t *testing.T) {
		f := newFixture(t)

		deposit := mustDecimal("50.00")
		req := createRequest()
		req.Deposit = &deposit

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openRoom(), nil)
		f.repo.EXPECT().
			InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, b model.Booking) (int64, error) {
				assert.True(t, b.Deposit.Equal(deposit))
				return 1, nil
			})
		f.roomSvc.EXPECT().
			TransitionTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)
		f.logRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := f.svc.Create(testContext(), req)
		assert.NoError(t, err)
	})

	t.Run("maintenance room gets the dedicated message", func(t *testing.T) {
		f := newFixture(t)

		room := openRoom()
		room.RoomStatus = roomModel.StatusMaintenance

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(room, nil)

		_, err := f.svc.Create(testContext(), createRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Room is under Maintenance. Please choose another room.")
	})

	t.Run("non open room names its current status", func(t *testing.T) {
		f := newFixture(t)

		room := openRoom()
		room.RoomStatus = roomModel.StatusOccupied

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(room, nil)

		_, err := f.svc.Create(testContext(), createRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Room is currently Occupied. Cannot create booking.")
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(testContext(), createRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Room 7 not found")
	})

	t.Run("blank guest name", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.GuestName = "   "

		_, err := f.svc.Create(testContext(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Guest name is required")
	})

	t.Run("blank guest passport", func(t *testing.T) {
		f := newFixture(t)

		req := createRequest()
		req.GuestPassport = ""

		_, err := f.svc.Create(testContext(), req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Guest passport is required")
	})
}

func TestBookingService_CheckIn(t *testing.T) {
	t.Run("paid booking checks in and occupies the room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(paidBooking(42), nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, fields map[string]any, _ interface{}) error {
				assert.Equal(t, f.now, fields[model.FieldGuestCheckIn])
				return nil
			})
		f.roomSvc.EXPECT().
			TransitionTx(gomock.Any(), gomock.Any(), int64(7), roomModel.StatusOccupied, int64(42)).
			Return(roomModel.Room{}, nil)
		f.logRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, entry model.BookingLog) error {
				assert.Equal(t, "Check-IN", entry.Action)
				return nil
			})

		res, err := f.svc.CheckIn(testContext(), 42)
		require.NoError(t, err)
		require.NotNil(t, res.GuestCheckIn)
		assert.Equal(t, f.now, *res.GuestCheckIn)
	})

	t.Run("unpaid booking is rejected", func(t *testing.T) {
		f := newFixture(t)

		b := paidBooking(42)
		b.Payment = mustDecimal("319.99")

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(b, nil)

		_, err := f.svc.CheckIn(testContext(), 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Please make payment first!")
	})

	t.Run("inactive booking is rejected", func(t *testing.T) {
		f := newFixture(t)

		b := paidBooking(42)
		b.Active = false

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(b, nil)

		_, err := f.svc.CheckIn(testContext(), 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Booking is no longer active")
	})

	t.Run("room not in Booked surfaces the transition conflict", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(paidBooking(42), nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		f.roomSvc.EXPECT().
			TransitionTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, assert.AnError)

		_, err := f.svc.CheckIn(testContext(), 42)
		assert.Error(t, err)
	})
}

func TestBookingService_CheckOut(t *testing.T) {
	checkOutAt := func(hour int) time.Time {
		return time.Date(2024, 6, 4, hour, 0, 0, 0, time.UTC)
	}

	expectCheckOut := func(f *fixture, wantRefund string, wantLate bool) {
		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(paidBooking(42), nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, fields map[string]any, _ interface{}) error {
				refund, ok := fields[model.FieldRefund].(decimal.Decimal)
				require.True(t, ok)
				assert.True(t, refund.Equal(mustDecimal(wantRefund)), "refund should be %s, got %s", wantRefund, refund)
				assert.Equal(t, wantLate, fields[model.FieldLateCheckout])
				return nil
			})
		f.roomSvc.EXPECT().
			TransitionTx(gomock.Any(), gomock.Any(), int64(7), roomModel.StatusHousekeeping, int64(42)).
			Return(roomModel.Room{}, nil)
		f.logRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, entry model.BookingLog) error {
				assert.Equal(t, "Check-OUT", entry.Action)
				return nil
			})
	}

	t.Run("on time checkout refunds the full deposit", func(t *testing.T) {
		f := newFixture(t)
		expectCheckOut(f, "20.00", false)

		res, err := f.svc.CheckOut(testContext(), 42, dto.CheckOutRequest{CheckOutTime: checkOutAt(11)})
		require.NoError(t, err)
		assert.False(t, res.LateCheckout)
		assert.True(t, res.Refund.Equal(mustDecimal("20.00")))
	})

	t.Run("checkout at 14:00 forfeits the deposit", func(t *testing.T) {
		f := newFixture(t)
		expectCheckOut(f, "0", true)

		res, err := f.svc.CheckOut(testContext(), 42, dto.CheckOutRequest{CheckOutTime: checkOutAt(14)})
		require.NoError(t, err)
		assert.True(t, res.LateCheckout)
		assert.True(t, res.Refund.IsZero())
	})

	t.Run("late checkout overrides a requested refund", func(t *testing.T) {
		f := newFixture(t)
		expectCheckOut(f, "0", true)

		override := mustDecimal("15.00")

		res, err := f.svc.CheckOut(testContext(), 42, dto.CheckOutRequest{CheckOutTime: checkOutAt(16), Refund: &override})
		require.NoError(t, err)
		assert.True(t, res.Refund.IsZero())
	})

	t.Run("requested refund applies before the late hour", func(t *testing.T) {
		f := newFixture(t)
		expectCheckOut(f, "15.00", false)

		override := mustDecimal("15.00")

		_, err := f.svc.CheckOut(testContext(), 42, dto.CheckOutRequest{CheckOutTime: checkOutAt(9), Refund: &override})
		assert.NoError(t, err)
	})

	t.Run("unpaid booking cannot check out", func(t *testing.T) {
		f := newFixture(t)

		b := paidBooking(42)
		b.Payment = decimal.Zero

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(b, nil)

		_, err := f.svc.CheckOut(testContext(), 42, dto.CheckOutRequest{CheckOutTime: checkOutAt(11)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Please make payment first!")
	})
}

func TestBookingService_ProcessPayment(t *testing.T) {
	t.Run("records payment without any state gate", func(t *testing.T) {
		f := newFixture(t)

		b := paidBooking(42)
		b.Payment = decimal.Zero

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(b, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
				payment, ok := fields[model.FieldPayment].(decimal.Decimal)
				require.True(t, ok)
				assert.True(t, payment.Equal(mustDecimal("320.00")))
				return nil
			})

		res, err := f.svc.ProcessPayment(testContext(), 42, dto.PaymentRequest{Payment: mustDecimal("320.00")})
		require.NoError(t, err)
		assert.True(t, res.Paid)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := f.svc.ProcessPayment(testContext(), 9, dto.PaymentRequest{Payment: decimal.Zero})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Booking 9 not found")
	})
}

func TestBookingService_Receipt(t *testing.T) {
	t.Run("total is payment minus refund", func(t *testing.T) {
		f := newFixture(t)

		b := paidBooking(42)
		b.Refund = mustDecimal("20.00")

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(b, nil)
		f.companyRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(companyModel.Company{
				CompanyName:    "STAR HOTEL",
				CurrencySymbol: "$",
				Active:         true,
			}, nil)

		res, err := f.svc.Receipt(testContext(), 42)
		require.NoError(t, err)
		assert.Equal(t, "000042", res.BookingNo)
		assert.Equal(t, "STAR HOTEL", res.CompanyName)
		assert.True(t, res.Total.Equal(mustDecimal("300.00")))
	})
}

// TestBookingService_FullStay walks a stay end to end: book three nights at
// 100 with the 20 deposit, pay 320, check in, check out at 11:00. The guest
// gets the deposit back and the receipt totals 300.
func TestBookingService_FullStay(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()

	stored := model.Booking{}

	f.roomRepo.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(openRoom(), nil)
	f.repo.EXPECT().
		InsertReturningIDTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, b model.Booking) (int64, error) {
			stored = b
			stored.ID = 42
			return 42, nil
		})
	f.roomSvc.EXPECT().
		TransitionTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(roomModel.Room{}, nil).
		AnyTimes()
	f.logRepo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	created, err := f.svc.Create(ctx, createRequest())
	require.NoError(t, err)
	require.True(t, created.TotalDue.Equal(mustDecimal("320.00")))

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, _ ...string) (model.Booking, error) {
			return stored, nil
		}).
		AnyTimes()
	f.repo.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, _ interface{}, _ ...string) (model.Booking, error) {
			return stored, nil
		}).
		AnyTimes()
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
			if v, ok := fields[model.FieldPayment].(decimal.Decimal); ok {
				stored.Payment = v
			}
			return nil
		}).
		AnyTimes()
	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, fields map[string]any, _ interface{}) error {
			if v, ok := fields[model.FieldGuestCheckIn].(time.Time); ok {
				stored.GuestCheckIn = &v
			}
			if v, ok := fields[model.FieldGuestCheckOut].(time.Time); ok {
				stored.GuestCheckOut = &v
			}
			if v, ok := fields[model.FieldRefund].(decimal.Decimal); ok {
				stored.Refund = v
			}
			if v, ok := fields[model.FieldLateCheckout].(bool); ok {
				stored.LateCheckout = v
			}
			return nil
		}).
		AnyTimes()

	_, err = f.svc.CheckIn(ctx, 42)
	require.Error(t, err, "unpaid booking must not check in")

	paid, err := f.svc.ProcessPayment(ctx, 42, dto.PaymentRequest{Payment: mustDecimal("320.00")})
	require.NoError(t, err)
	require.True(t, paid.Paid)

	checkedIn, err := f.svc.CheckIn(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, checkedIn.GuestCheckIn)
	assert.Equal(t, f.now, *checkedIn.GuestCheckIn, "actual arrival overwrites the expected time")

	out, err := f.svc.CheckOut(ctx, 42, dto.CheckOutRequest{
		CheckOutTime: time.Date(2024, 6, 4, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.False(t, out.LateCheckout)
	assert.True(t, out.Refund.Equal(mustDecimal("20.00")))

	f.companyRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(companyModel.Company{CompanyName: "STAR HOTEL", Active: true}, nil)

	receipt, err := f.svc.Receipt(ctx, 42)
	require.NoError(t, err)
	assert.True(t, receipt.Total.Equal(mustDecimal("300.00")), "receipt total should be payment minus refund")
}
