package mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"starhotel/infras/postgres"
)

type transactorImpl struct {
}

// WithTransaction implements postgres.Transactor. It runs fn with a nil
// transaction so services can be tested without a database.
func (t *transactorImpl) WithTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
