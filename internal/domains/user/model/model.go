package model

import (
	"starhotel/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldUserID         = "user_id"
	FieldUserName       = "user_name"
	FieldUserGroup      = "user_group"
	FieldPassword       = "password"
	FieldIdle           = "idle"
	FieldLoginAttempts  = "login_attempts"
	FieldChangePassword = "change_password"
	FieldActive         = "active"
)

// User groups. Administrator is exempt from login attempt counting.
const (
	GroupAdministrator = 1
	GroupManager       = 2
	GroupFrontDesk     = 3
	GroupHousekeeping  = 4
)

// User is an operator account. UserID is stored uppercase and is the primary
// key. Password holds a bcrypt hash, never plaintext.
type User struct {
	UserID         string `db:"user_id"`
	UserName       string `db:"user_name"`
	UserGroup      int    `db:"user_group"`
	Password       string `db:"password"`
	Idle           int    `db:"idle"`
	LoginAttempts  int    `db:"login_attempts"`
	ChangePassword bool   `db:"change_password"`
	Active         bool   `db:"active"`
	model.Metadata
}
