package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"starhotel/config"
	"starhotel/infras/otel"
	"starhotel/infras/postgres"
	"starhotel/internal/domains/booking/model"
	"starhotel/internal/domains/booking/model/dto"
	"starhotel/internal/domains/booking/repository"
	companyModel "starhotel/internal/domains/company/model"
	companyRepository "starhotel/internal/domains/company/repository"
	roomModel "starhotel/internal/domains/room/model"
	roomRepository "starhotel/internal/domains/room/repository"
	roomService "starhotel/internal/domains/room/service"
	"starhotel/shared"
	"starhotel/shared/cache"
	"starhotel/shared/clock"
	"starhotel/shared/constant"
	gDto "starhotel/shared/dto"
	"starhotel/shared/failure"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"

	actionBookingCreated = "Booking Created"
	actionCheckIn        = "Check-IN"
	actionCheckOut       = "Check-OUT"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	SearchByGuest(ctx context.Context, query string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	CheckIn(ctx context.Context, id int64) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id int64, req dto.CheckOutRequest) (dto.BookingResponse, error)
	ProcessPayment(ctx context.Context, id int64, req dto.PaymentRequest) (dto.BookingResponse, error)
	Receipt(ctx context.Context, id int64) (dto.ReceiptResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	logRepo     repository.BookingLog
	roomRepo    roomRepository.Room
	roomSvc     roomService.Room
	companyRepo companyRepository.Company
	db          postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	clock       clock.Clock
}

func New(
	repo repository.Booking,
	logRepo repository.BookingLog,
	roomRepo roomRepository.Room,
	roomSvc roomService.Room,
	companyRepo companyRepository.Company,
	db postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	clock clock.Clock,
) Booking {
	return &serviceImpl{
		repo:        repo,
		logRepo:     logRepo,
		roomRepo:    roomRepo,
		roomSvc:     roomSvc,
		companyRepo: companyRepo,
		db:          db,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		clock:       clock,
	}
}

// Create opens a new booking on an Open room. The booking row, the room
// transition to Booked and both audit logs commit atomically.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if strings.TrimSpace(req.GuestName) == "" {
		return res, failure.BadRequestFromString("Guest name is required") // nolint:wrapcheck
	}

	if strings.TrimSpace(req.GuestPassport) == "" {
		return res, failure.BadRequestFromString("Guest passport is required") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	deposit, err := s.resolveDeposit(req.Deposit)
	if err != nil {
		return res, err
	}

	bookingDate := req.BookingDate
	if bookingDate.IsZero() {
		bookingDate = now
	}

	// Stored as the expected arrival and departure times until the actual
	// check-in and check-out overwrite them.
	expectedCheckIn := req.GuestCheckIn
	expectedCheckOut := req.GuestCheckOut

	var booking model.Booking

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, txErr := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if txErr != nil {
			log.Error().Err(txErr).Msg("failed to get room")

			return fmt.Errorf("failed to get room: %w", txErr)
		}

		if room.ID == 0 {
			return failure.NotFound(fmt.Sprintf("Room %d not found", req.RoomID)) // nolint:wrapcheck
		}

		if room.RoomStatus == roomModel.StatusMaintenance {
			return failure.Conflict("Room is under Maintenance. Please choose another room.") // nolint:wrapcheck
		}

		if room.RoomStatus != roomModel.StatusOpen {
			return failure.Conflict(fmt.Sprintf("Room is currently %s. Cannot create booking.", room.RoomStatus)) // nolint:wrapcheck
		}

		booking = model.Booking{
			RoomID:         room.ID,
			GuestName:      req.GuestName,
			GuestPassport:  req.GuestPassport,
			GuestOrigin:    req.GuestOrigin,
			GuestContact:   req.GuestContact,
			EmergencyName:  req.EmergencyName,
			EmergencyNo:    req.EmergencyNo,
			TotalGuest:     req.TotalGuest,
			StayDuration:   req.StayDuration,
			BookingDate:    bookingDate,
			GuestCheckIn:   &expectedCheckIn,
			GuestCheckOut:  &expectedCheckOut,
			RoomNo:         room.RoomShortName,
			RoomType:       room.RoomType,
			RoomLocation:   room.RoomLocation,
			RoomPrice:      room.RoomPrice,
			Breakfast:      room.Breakfast,
			BreakfastPrice: room.BreakfastPrice,
			SubTotal:       room.RoomPrice.Mul(decimal.NewFromInt(int64(req.StayDuration))),
			Deposit:        deposit,
			Payment:        decimal.Zero,
			Refund:         decimal.Zero,
			Remarks:        req.Remarks,
			Active:         true,
		}
		booking.CreatedAt = now
		booking.ModifiedAt = now
		booking.CreatedBy = user
		booking.ModifiedBy = user

		id, txErr := s.repo.InsertReturningIDTx(ctx, tx, booking)
		if txErr != nil {
			log.Error().Err(txErr).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", txErr)
		}

		booking.ID = id

		if _, txErr = s.roomSvc.TransitionTx(ctx, tx, room.ID, roomModel.StatusBooked, id); txErr != nil {
			return txErr
		}

		return s.appendLogTx(ctx, tx, booking, actionBookingCreated, user, now)
	})
	if err != nil {
		return res, err
	}

	s.invalidateBookingCaches(ctx, booking.ID)

	log.Info().Int64("bookingId", booking.ID).Int64("roomId", booking.RoomID).Msg("booking created")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// SearchByGuest matches the query against guest name and passport,
// case-insensitively.
func (s *serviceImpl) SearchByGuest(ctx context.Context, query string, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchByGuest")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldGuestName,
				Value:    query,
				Operator: gDto.FilterOperatorLike,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldGuestPassport,
				Value:    query,
				Operator: gDto.FilterOperatorLike,
				Table:    model.TableName,
				ArgName:  "guest_passport_like",
			},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search bookings")

		return res, fmt.Errorf("failed to search bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	return res, nil
}

// CheckIn moves a paid booking into occupancy. The guest check-in timestamp,
// the room transition to Occupied and the audit log commit atomically.
func (s *serviceImpl) CheckIn(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	var booking model.Booking

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var txErr error

		booking, txErr = s.getBookingForSettlementTx(ctx, tx, id)
		if txErr != nil {
			return txErr
		}

		updatedFields := map[string]any{
			model.FieldGuestCheckIn:  now,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if txErr = s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); txErr != nil {
			log.Error().Err(txErr).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", txErr)
		}

		if _, txErr = s.roomSvc.TransitionTx(ctx, tx, booking.RoomID, roomModel.StatusOccupied, booking.ID); txErr != nil {
			return txErr
		}

		return s.appendLogTx(ctx, tx, booking, actionCheckIn, user, now)
	})
	if err != nil {
		return res, err
	}

	s.invalidateBookingCaches(ctx, id)

	booking.GuestCheckIn = &now

	log.Info().Int64("bookingId", id).Msg("guest checked in")

	res.FromModel(booking)

	return res, nil
}

// CheckOut settles a stay. Checking out at or after the late checkout hour
// forfeits the deposit entirely, overriding any requested refund.
func (s *serviceImpl) CheckOut(ctx context.Context, id int64, req dto.CheckOutRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := s.clock.Now()

	checkOutTime := req.CheckOutTime
	if checkOutTime.IsZero() {
		checkOutTime = now
	}

	var booking model.Booking

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		var txErr error

		booking, txErr = s.getBookingForSettlementTx(ctx, tx, id)
		if txErr != nil {
			return txErr
		}

		refund := booking.Deposit
		lateCheckout := false

		switch {
		case checkOutTime.Hour() >= s.cfg.Hotel.LateCheckoutHour:
			refund = decimal.Zero
			lateCheckout = true
		case req.Refund != nil:
			refund = *req.Refund
		}

		booking.GuestCheckOut = &checkOutTime
		booking.Refund = refund
		booking.LateCheckout = lateCheckout

		updatedFields := map[string]any{
			model.FieldGuestCheckOut: checkOutTime,
			model.FieldRefund:        refund,
			model.FieldLateCheckout:  lateCheckout,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if txErr = s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); txErr != nil {
			log.Error().Err(txErr).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", txErr)
		}

		if _, txErr = s.roomSvc.TransitionTx(ctx, tx, booking.RoomID, roomModel.StatusHousekeeping, booking.ID); txErr != nil {
			return txErr
		}

		return s.appendLogTx(ctx, tx, booking, actionCheckOut, user, now)
	})
	if err != nil {
		return res, err
	}

	s.invalidateBookingCaches(ctx, id)

	log.Info().Int64("bookingId", id).Bool("lateCheckout", booking.LateCheckout).Msg("guest checked out")

	res.FromModel(booking)

	return res, nil
}

// ProcessPayment records money movement on a booking. It deliberately has no
// state gate so corrections can be made at any point of the stay.
func (s *serviceImpl) ProcessPayment(ctx context.Context, id int64, req dto.PaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProcessPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	booking.Payment = req.Payment

	updatedFields := map[string]any{
		model.FieldPayment:       req.Payment,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.Deposit != nil {
		booking.Deposit = *req.Deposit
		updatedFields[model.FieldDeposit] = *req.Deposit
	}

	if req.Refund != nil {
		booking.Refund = *req.Refund
		updatedFields[model.FieldRefund] = *req.Refund
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking payment")

		return res, fmt.Errorf("failed to update booking payment: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	log.Info().Int64("bookingId", id).Str("payment", req.Payment.String()).Msg("payment processed")

	res.FromModel(booking)

	return res, nil
}

// Receipt renders the settlement summary. Total is what the guest actually
// parted with: payment minus refund.
func (s *serviceImpl) Receipt(ctx context.Context, id int64) (res dto.ReceiptResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	companyFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    companyModel.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    companyModel.TableName,
			},
		},
	}

	company, err := s.companyRepo.Get(ctx, companyFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get company profile")

		return res, fmt.Errorf("failed to get company profile: %w", err)
	}

	res.FromModels(booking, company, fmt.Sprintf("%06d", booking.ID))

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound(fmt.Sprintf("Booking %d not found", id)) // nolint:wrapcheck
	}

	return booking, nil
}

// getBookingForSettlementTx locks the booking row and enforces the shared
// check-in/check-out preconditions: the booking exists, is active, and is
// settled in full.
func (s *serviceImpl) getBookingForSettlementTx(ctx context.Context, tx *sqlx.Tx, id int64) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound(fmt.Sprintf("Booking %d not found", id)) // nolint:wrapcheck
	}

	if !booking.Active {
		return booking, failure.BadRequestFromString("Booking is no longer active") // nolint:wrapcheck
	}

	if !booking.IsPaid() {
		return booking, failure.BadRequestFromString("Please make payment first!") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) resolveDeposit(requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested != nil {
		return *requested, nil
	}

	deposit, err := decimal.NewFromString(s.cfg.Hotel.DefaultDeposit)
	if err != nil {
		log.Error().Err(err).Str("deposit", s.cfg.Hotel.DefaultDeposit).Msg("invalid default deposit configured")

		return decimal.Zero, fmt.Errorf("invalid default deposit configured: %w", err)
	}

	return deposit, nil
}

func (s *serviceImpl) appendLogTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, action, user string, now time.Time) error {
	entry := model.BookingLog{
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		GuestName: booking.GuestName,
		Action:    action,
		CreatedAt: now,
		CreatedBy: user,
	}

	if err := s.logRepo.InsertTx(ctx, tx, entry); err != nil {
		log.Error().Err(err).Msg("failed to append booking log")

		return fmt.Errorf("failed to append booking log: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, fmt.Sprintf("%d", id))); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()
}
