package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"starhotel/infras/otel"
	"starhotel/infras/postgres"
	"starhotel/internal/domains/company/model"
	gDto "starhotel/shared/dto"
	gRepo "starhotel/shared/repository"
)

type Company interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Company, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Company]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Company {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Company](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
