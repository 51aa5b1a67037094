package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"starhotel/config"
	"starhotel/infras/otel"
	"starhotel/infras/postgres"
	"starhotel/internal/domains/room/model"
	"starhotel/internal/domains/room/model/dto"
	"starhotel/internal/domains/room/repository"
	"starhotel/shared"
	"starhotel/shared/cache"
	"starhotel/shared/clock"
	"starhotel/shared/constant"
	gDto "starhotel/shared/dto"
	"starhotel/shared/failure"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) error
	Deactivate(ctx context.Context, id int64) error
	Transition(ctx context.Context, id int64, target model.Status, bookingID int64) (dto.RoomResponse, error)
	TransitionTx(ctx context.Context, tx *sqlx.Tx, id int64, target model.Status, bookingID int64) (model.Room, error)
}

type serviceImpl struct {
	repo    repository.Room
	logRepo repository.RoomLog
	db      postgres.Transactor
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	clock   clock.Clock
}

func New(repo repository.Room, logRepo repository.RoomLog, db postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock clock.Clock) Room {
	return &serviceImpl{
		repo:    repo,
		logRepo: logRepo,
		db:      db,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		clock:   clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user, s.clock.Now())); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidateListCaches(ctx)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.NotFound(fmt.Sprintf("Room %d not found", id)) // nolint:wrapcheck
	}

	res.FromModel(room)

	return res, nil
}

// Update edits room attributes. Rooms holding a live booking cannot be
// edited so past receipts keep their snapshot semantics.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return failure.NotFound(fmt.Sprintf("Room %d not found", id)) // nolint:wrapcheck
	}

	if room.RoomStatus == model.StatusBooked || room.RoomStatus == model.StatusOccupied {
		return failure.Conflict("Cannot edit a room that is Booked or Occupied") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidateRoomCaches(ctx, id)

	return nil
}

// Deactivate soft-deletes a room. Rooms are never removed from storage.
func (s *serviceImpl) Deactivate(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound(fmt.Sprintf("Room %d not found", id)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldActive:        false,
		constant.FieldModifiedAt: s.clock.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to deactivate room")

		return fmt.Errorf("failed to deactivate room: %w", err)
	}

	s.invalidateRoomCaches(ctx, id)

	return nil
}

// Transition moves a room through the status state machine inside a single
// transaction. On failure nothing is written, including the audit log.
func (s *serviceImpl) Transition(ctx context.Context, id int64, target model.Status, bookingID int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	var updated model.Room

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		updated, err = s.TransitionTx(ctx, tx, id, target, bookingID)

		return err
	})
	if err != nil {
		return res, err
	}

	s.invalidateRoomCaches(ctx, id)

	res.FromModel(updated)

	return res, nil
}

// TransitionTx is the transaction-scoped transition used both directly and
// from inside the booking engine's own transaction.
func (s *serviceImpl) TransitionTx(ctx context.Context, tx *sqlx.Tx, id int64, target model.Status, bookingID int64) (model.Room, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TransitionTx")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	room, err := s.repo.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return room, failure.NotFound(fmt.Sprintf("Room %d not found", id)) // nolint:wrapcheck
	}

	current := room.RoomStatus
	if !current.CanTransitionTo(target) {
		return room, failure.InvalidTransition(string(current), string(target)) // nolint:wrapcheck
	}

	now := s.clock.Now()

	updatedFields := map[string]any{
		model.FieldRoomStatus:    target,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if target == model.StatusBooked && bookingID > 0 {
		updatedFields[model.FieldBookingID] = bookingID
	}

	if target == model.StatusOpen {
		updatedFields[model.FieldBookingID] = int64(0)
	}

	if err = s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room status")

		return room, fmt.Errorf("failed to update room status: %w", err)
	}

	entry := model.RoomLog{
		RoomID:        room.ID,
		BookingID:     bookingID,
		RoomShortName: room.RoomShortName,
		RoomStatus:    target,
		Action:        fmt.Sprintf("Status changed: %s → %s", current, target),
		CreatedAt:     now,
		CreatedBy:     user,
	}

	if err = s.logRepo.InsertTx(ctx, tx, entry); err != nil {
		log.Error().Err(err).Msg("failed to append room log")

		return room, fmt.Errorf("failed to append room log: %w", err)
	}

	log.Info().Int64("roomId", id).Str("from", string(current)).Str("to", string(target)).Msg("room status updated")

	room.RoomStatus = target
	room.ModifiedAt = now
	room.ModifiedBy = user

	if target == model.StatusBooked && bookingID > 0 {
		room.BookingID = bookingID
	}

	if target == model.StatusOpen {
		room.BookingID = 0
	}

	return room, nil
}

func (s *serviceImpl) invalidateRoomCaches(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, fmt.Sprintf("%d", id))); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}
