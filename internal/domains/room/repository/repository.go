package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"starhotel/infras/otel"
	"starhotel/infras/postgres"
	"starhotel/internal/domains/room/model"
	gDto "starhotel/shared/dto"
	gRepo "starhotel/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// RoomLog is the append-only audit trail for room status transitions.
type RoomLog interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.RoomLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomLog, error)
}

type logRepositoryImpl struct {
	gRepo.Repository[model.RoomLog]
	db   *postgres.Connection
	otel otel.Otel
}

func NewLog(db *postgres.Connection, otel otel.Otel) RoomLog {
	return &logRepositoryImpl{
		Repository: gRepo.NewRepository[model.RoomLog](model.LogEntityName, model.LogTableName, model.LogFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *logRepositoryImpl) InsertTx(ctx context.Context, sqltx *sqlx.Tx, log model.RoomLog) error {
	_, err := r.Repository.InsertReturningIDTx(ctx, sqltx, log)

	return err
}
