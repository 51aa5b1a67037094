package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"starhotel/config"
	otelMocks "starhotel/infras/otel/mocks"
	roomMocks "starhotel/internal/domains/room/mocks"
	"starhotel/internal/domains/room/model"
	"starhotel/internal/domains/room/model/dto"
	"starhotel/internal/domains/room/service"
	cacheMocks "starhotel/shared/cache/mocks"
	"starhotel/shared/clock"
	"starhotel/shared/constant"
	gDto "starhotel/shared/dto"
	gModel "starhotel/shared/model"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *roomMocks.MockRoom
	logRepo *roomMocks.MockRoomLog
	cache   *cacheMocks.MockRedisCache
	svc     service.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := roomMocks.NewMockRoom(ctrl)
	logRepo := roomMocks.NewMockRoomLog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	return &fixture{
		repo:    repo,
		logRepo: logRepo,
		cache:   mockCache,
		svc:     service.New(repo, logRepo, nil, cfg, mockCache, otelMocks.NewOtel(), clock.Fixed(testNow)),
	}
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "FRONTDESK")
}

func openRoom(id int64) model.Room {
	return model.Room{
		ID:            id,
		RoomShortName: "101",
		RoomLongName:  "Deluxe 101",
		RoomType:      "Deluxe",
		RoomPrice:     decimal.RequireFromString("100.00"),
		RoomStatus:    model.StatusOpen,
		Active:        true,
		Metadata: gModel.Metadata{
			CreatedAt: testNow,
			CreatedBy: "ADMIN",
		},
	}
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name: "successful creation starts Open with no booking",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, model.StatusOpen, room.RoomStatus)
						assert.Equal(t, int64(0), room.BookingID)
						assert.True(t, room.Active)
						return nil
					})
			},
		},
		{
			name: "repository error",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(testContext(), dto.CreateRoomRequest{
				RoomShortName: "101",
				RoomType:      "Deluxe",
				RoomPrice:     decimal.RequireFromString("100.00"),
			})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(openRoom(1), nil)

		res, err := f.svc.Get(testContext(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.ID)
		assert.Equal(t, model.StatusOpen, res.RoomStatus)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := f.svc.Get(testContext(), 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Room 42 not found")
	})
}

func TestRoomService_GetAll(t *testing.T) {
	t.Run("cache miss hits repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Room{openRoom(1), openRoom(2)}, nil)

		res, err := f.svc.GetAll(testContext(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		require.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, 1, res.TotalPage)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := f.svc.GetAll(testContext(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		assert.NoError(t, err)
	})
}

func TestRoomService_Update(t *testing.T) {
	price := decimal.RequireFromString("150.00")

	tests := []struct {
		name       string
		current    model.Status
		wantErr    bool
		wantErrMsg string
	}{
		{name: "open room is editable", current: model.StatusOpen},
		{name: "housekeeping room is editable", current: model.StatusHousekeeping},
		{name: "maintenance room is editable", current: model.StatusMaintenance},
		{
			name:       "booked room cannot be edited",
			current:    model.StatusBooked,
			wantErr:    true,
			wantErrMsg: "Cannot edit a room that is Booked or Occupied",
		},
		{
			name:       "occupied room cannot be edited",
			current:    model.StatusOccupied,
			wantErr:    true,
			wantErrMsg: "Cannot edit a room that is Booked or Occupied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			room := openRoom(1)
			room.RoomStatus = tt.current

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(room, nil)

			if !tt.wantErr {
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			}

			err := f.svc.Update(testContext(), dto.UpdateRoomRequest{RoomPrice: &price}, 1)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		err := f.svc.Update(testContext(), dto.UpdateRoomRequest{}, 9)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Room 9 not found")
	})
}

func TestRoomService_Deactivate(t *testing.T) {
	t.Run("marks room inactive", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldActive])
				return nil
			})

		assert.NoError(t, f.svc.Deactivate(testContext(), 1))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.Deactivate(testContext(), 7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Room 7 not found")
	})
}

// TestRoomService_TransitionTable walks every (from, to) pair of the status
// state machine and checks exactly the allowed set goes through.
func TestRoomService_TransitionTable(t *testing.T) {
	allowed := map[model.Status]map[model.Status]bool{
		model.StatusOpen:         {model.StatusBooked: true, model.StatusMaintenance: true, model.StatusHousekeeping: true},
		model.StatusBooked:       {model.StatusOccupied: true, model.StatusOpen: true},
		model.StatusOccupied:     {model.StatusHousekeeping: true},
		model.StatusHousekeeping: {model.StatusOpen: true, model.StatusMaintenance: true},
		model.StatusMaintenance:  {model.StatusOpen: true},
	}

	for _, from := range model.AllStatuses {
		for _, to := range model.AllStatuses {
			from, to := from, to

			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				f := newFixture(t)

				room := openRoom(1)
				room.RoomStatus = from
				if from == model.StatusBooked || from == model.StatusOccupied {
					room.BookingID = 55
				}

				f.repo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(room, nil)

				if allowed[from][to] {
					f.repo.EXPECT().
						UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						Return(nil)
					f.logRepo.EXPECT().
						InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
						Return(nil)
				}

				updated, err := f.svc.TransitionTx(testContext(), nil, 1, to, 0)

				if allowed[from][to] {
					require.NoError(t, err)
					assert.Equal(t, to, updated.RoomStatus)
				} else {
					require.Error(t, err)
					assert.Contains(t, err.Error(), fmt.Sprintf("Invalid room status transition: %s → %s", from, to))
				}
			})
		}
	}
}

func TestRoomService_TransitionTx(t *testing.T) {
	t.Run("booking id is stamped when moving to Booked", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openRoom(1), nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusBooked, fields[model.FieldRoomStatus])
				assert.Equal(t, int64(88), fields[model.FieldBookingID])
				return nil
			})
		f.logRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, entry model.RoomLog) error {
				assert.Equal(t, "Status changed: Open → Booked", entry.Action)
				assert.Equal(t, int64(88), entry.BookingID)
				assert.Equal(t, "FRONTDESK", entry.CreatedBy)
				assert.Equal(t, testNow, entry.CreatedAt)
				return nil
			})

		updated, err := f.svc.TransitionTx(testContext(), nil, 1, model.StatusBooked, 88)
		require.NoError(t, err)
		assert.Equal(t, int64(88), updated.BookingID)
	})

	t.Run("booking id is cleared when returning to Open", func(t *testing.T) {
		f := newFixture(t)

		room := openRoom(1)
		room.RoomStatus = model.StatusHousekeeping
		room.BookingID = 55

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(room, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, int64(0), fields[model.FieldBookingID])
				return nil
			})
		f.logRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		updated, err := f.svc.TransitionTx(testContext(), nil, 1, model.StatusOpen, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), updated.BookingID)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := f.svc.TransitionTx(testContext(), nil, 404, model.StatusBooked, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Room 404 not found")
	})

	t.Run("failed log append aborts the transition", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openRoom(1), nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		f.logRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("insert failed"))

		_, err := f.svc.TransitionTx(testContext(), nil, 1, model.StatusBooked, 1)
		assert.Error(t, err)
	})
}
