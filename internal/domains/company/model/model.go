package model

import (
	"starhotel/shared/model"
)

const (
	TableName  = "company"
	EntityName = "company"

	FieldID     = "id"
	FieldActive = "active"
)

// Company is the hotel profile printed on receipts. A single active row is
// expected.
type Company struct {
	ID             int64  `db:"id"`
	CompanyName    string `db:"company_name"`
	CompanyAddress string `db:"company_address"`
	CompanyContact string `db:"company_contact"`
	CurrencySymbol string `db:"currency_symbol"`
	Active         bool   `db:"active"`
	model.Metadata
}
