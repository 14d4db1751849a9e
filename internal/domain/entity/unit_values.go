package entity

import "github.com/sangkips/warehouse-api/internal/domain/enum"

// UnitValues holds one numeric string per packaging unit. Unset units are the empty string.
type UnitValues struct {
	Box    string `gorm:"size:32" json:"box"`
	Pack   string `gorm:"size:32" json:"pack,omitempty"`
	Case   string `gorm:"size:32" json:"case"`
	Bottle string `gorm:"size:32" json:"bottle"`
	Shell  string `gorm:"size:32" json:"shell"`
}

// Get returns the value stored for a unit
func (v UnitValues) Get(unit enum.UnitType) string {
	switch unit {
	case enum.UnitBox:
		return v.Box
	case enum.UnitPack:
		return v.Pack
	case enum.UnitCase:
		return v.Case
	case enum.UnitBottle:
		return v.Bottle
	case enum.UnitShell:
		return v.Shell
	}
	return ""
}

// Set stores a value for a unit and reports whether the unit is known
func (v *UnitValues) Set(unit enum.UnitType, value string) bool {
	switch unit {
	case enum.UnitBox:
		v.Box = value
	case enum.UnitPack:
		v.Pack = value
	case enum.UnitCase:
		v.Case = value
	case enum.UnitBottle:
		v.Bottle = value
	case enum.UnitShell:
		v.Shell = value
	default:
		return false
	}
	return true
}
