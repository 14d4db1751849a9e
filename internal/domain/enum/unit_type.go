package enum

import "fmt"

// UnitType is a packaging granularity used as a key in price and quantity maps
type UnitType string

const (
	UnitBox    UnitType = "box"
	UnitPack   UnitType = "pack"
	UnitCase   UnitType = "case"
	UnitBottle UnitType = "bottle"
	UnitShell  UnitType = "shell"
)

// ReceivingUnits are the units that carry a price on a receiving line, in calculation order.
// Pack only appears on stock views.
var ReceivingUnits = []UnitType{UnitBox, UnitCase, UnitBottle, UnitShell}

// StockUnits are the units shown on stock views
var StockUnits = []UnitType{UnitBox, UnitPack, UnitCase, UnitBottle, UnitShell}

func (u UnitType) String() string {
	return string(u)
}

// IsValid checks if the unit type is known
func (u UnitType) IsValid() bool {
	switch u {
	case UnitBox, UnitPack, UnitCase, UnitBottle, UnitShell:
		return true
	}
	return false
}

// IsReceivingUnit reports whether the unit can be priced on a receiving line
func (u UnitType) IsReceivingUnit() bool {
	return u.IsValid() && u != UnitPack
}

// ParseUnitType converts a string to a UnitType
func ParseUnitType(s string) (UnitType, error) {
	u := UnitType(s)
	if !u.IsValid() {
		return "", fmt.Errorf("unknown unit type %q", s)
	}
	return u, nil
}
