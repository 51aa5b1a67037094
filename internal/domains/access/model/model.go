package model

import (
	"starhotel/shared/model"
)

const (
	TableName  = "module_access"
	EntityName = "module_access"

	FieldModuleID   = "module_id"
	FieldModuleDesc = "module_desc"
	FieldGroup1     = "group_1"
	FieldGroup2     = "group_2"
	FieldGroup3     = "group_3"
	FieldGroup4     = "group_4"
	FieldActive     = "active"
)

// Application modules. Dashboard access is the login gate: an operator whose
// group cannot reach it cannot sign in at all.
const (
	ModuleDashboard    = 1
	ModuleRooms        = 2
	ModuleBookings     = 3
	ModuleHousekeeping = 4
	ModuleReports      = 5
	ModuleAdmin        = 6
)

// ModuleAccess holds one per-group permission flag per module. An inactive
// module denies every group regardless of flags.
type ModuleAccess struct {
	ModuleID   int    `db:"module_id"`
	ModuleDesc string `db:"module_desc"`
	Group1     bool   `db:"group_1"`
	Group2     bool   `db:"group_2"`
	Group3     bool   `db:"group_3"`
	Group4     bool   `db:"group_4"`
	Active     bool   `db:"active"`
	model.Metadata
}

// AllowsGroup reports whether the given user group may use this module.
// Unknown groups are always denied.
func (m ModuleAccess) AllowsGroup(group int) bool {
	if !m.Active {
		return false
	}

	switch group {
	case 1:
		return m.Group1
	case 2:
		return m.Group2
	case 3:
		return m.Group3
	case 4:
		return m.Group4
	default:
		return false
	}
}
