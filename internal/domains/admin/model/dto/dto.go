package dto

import (
	"strings"
	"time"

	accessModel "starhotel/internal/domains/access/model"
	companyModel "starhotel/internal/domains/company/model"
	userModel "starhotel/internal/domains/user/model"
	"starhotel/shared"
)

type CreateUserRequest struct {
	UserID    string `json:"user_id"    validate:"required,max=20"`
	UserName  string `json:"user_name"  validate:"required,max=100"`
	UserGroup int    `json:"user_group" validate:"required,gte=1,lte=4"`
	Password  string `json:"password"   validate:"required"`
	Idle      int    `json:"idle"       validate:"omitempty,gte=0"`
}

// NormalizedUserID returns the canonical, uppercase form of the user id.
func (r CreateUserRequest) NormalizedUserID() string {
	return strings.ToUpper(strings.TrimSpace(r.UserID))
}

type UserResponse struct {
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	UserGroup      int       `json:"user_group"`
	Idle           int       `json:"idle"`
	LoginAttempts  int       `json:"login_attempts"`
	ChangePassword bool      `json:"change_password"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}

func (r *UserResponse) FromModel(u userModel.User) {
	r.UserID = u.UserID
	r.UserName = u.UserName
	r.UserGroup = u.UserGroup
	r.Idle = u.Idle
	r.LoginAttempts = u.LoginAttempts
	r.ChangePassword = u.ChangePassword
	r.Active = u.Active
	r.CreatedAt = u.CreatedAt
	r.ModifiedAt = u.ModifiedAt
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	Total     int            `json:"total"`
	TotalPage int            `json:"total_page"`
}

func (g *GetUsersResponse) FromModels(users []userModel.User, total, limit int) {
	g.Users = make([]UserResponse, 0, len(users))

	for _, u := range users {
		res := UserResponse{}
		res.FromModel(u)
		g.Users = append(g.Users, res)
	}

	g.Total = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}

type UpdateModuleAccessRequest struct {
	Group1 *bool `json:"group_1" validate:"omitempty"`
	Group2 *bool `json:"group_2" validate:"omitempty"`
	Group3 *bool `json:"group_3" validate:"omitempty"`
	Group4 *bool `json:"group_4" validate:"omitempty"`
	Active *bool `json:"active"  validate:"omitempty"`
}

type ModuleAccessResponse struct {
	ModuleID   int    `json:"module_id"`
	ModuleDesc string `json:"module_desc"`
	Group1     bool   `json:"group_1"`
	Group2     bool   `json:"group_2"`
	Group3     bool   `json:"group_3"`
	Group4     bool   `json:"group_4"`
	Active     bool   `json:"active"`
}

func (r *ModuleAccessResponse) FromModel(m accessModel.ModuleAccess) {
	r.ModuleID = m.ModuleID
	r.ModuleDesc = m.ModuleDesc
	r.Group1 = m.Group1
	r.Group2 = m.Group2
	r.Group3 = m.Group3
	r.Group4 = m.Group4
	r.Active = m.Active
}

type UpdateCompanyRequest struct {
	CompanyName    string `db:"company_name"    json:"company_name"    validate:"omitempty,max=100"`
	CompanyAddress string `db:"company_address" json:"company_address" validate:"omitempty,max=255"`
	CompanyContact string `db:"company_contact" json:"company_contact" validate:"omitempty,max=100"`
	CurrencySymbol string `db:"currency_symbol" json:"currency_symbol" validate:"omitempty,max=5"`
}

type CompanyResponse struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyContact string `json:"company_contact"`
	CurrencySymbol string `json:"currency_symbol"`
}

func (r *CompanyResponse) FromModel(c companyModel.Company) {
	r.CompanyName = c.CompanyName
	r.CompanyAddress = c.CompanyAddress
	r.CompanyContact = c.CompanyContact
	r.CurrencySymbol = c.CurrencySymbol
}
