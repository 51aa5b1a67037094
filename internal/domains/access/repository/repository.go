package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"starhotel/infras/otel"
	"starhotel/infras/postgres"
	"starhotel/internal/domains/access/model"
	gDto "starhotel/shared/dto"
	gRepo "starhotel/shared/repository"
)

type ModuleAccess interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ModuleAccess, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ModuleAccess, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ModuleAccess]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) ModuleAccess {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ModuleAccess](model.EntityName, model.TableName, model.FieldModuleID, db, otel),
		db:         db,
		otel:       otel,
	}
}
