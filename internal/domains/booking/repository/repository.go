package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"starhotel/infras/otel"
	"starhotel/infras/postgres"
	"starhotel/internal/domains/booking/model"
	gDto "starhotel/shared/dto"
	gRepo "starhotel/shared/repository"
)

type Booking interface {
	InsertReturningIDTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// BookingLog is the append-only audit trail for booking lifecycle events.
type BookingLog interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.BookingLog) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingLog, error)
}

type logRepositoryImpl struct {
	gRepo.Repository[model.BookingLog]
	db   *postgres.Connection
	otel otel.Otel
}

func NewLog(db *postgres.Connection, otel otel.Otel) BookingLog {
	return &logRepositoryImpl{
		Repository: gRepo.NewRepository[model.BookingLog](model.LogEntityName, model.LogTableName, model.LogFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *logRepositoryImpl) InsertTx(ctx context.Context, sqltx *sqlx.Tx, log model.BookingLog) error {
	_, err := r.Repository.InsertReturningIDTx(ctx, sqltx, log)

	return err
}
