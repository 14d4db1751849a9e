package enum

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StockStatus represents the stock level band of an item, derived from its shell quantity
type StockStatus int

const (
	StockStatusOutOfStock StockStatus = 0
	StockStatusLow        StockStatus = 1
	StockStatusModerate   StockStatus = 2
	StockStatusHigh       StockStatus = 3
)

// Shell quantity thresholds for the status bands
var (
	LowStockShellLimit      = decimal.NewFromInt(300)
	ModerateStockShellLimit = decimal.NewFromInt(600)
)

func (s StockStatus) String() string {
	switch s {
	case StockStatusLow:
		return "Low"
	case StockStatusModerate:
		return "Moderate"
	case StockStatusHigh:
		return "High"
	}
	return "Out of Stock"
}

// StockStatusForShell returns the band for a shell quantity
func StockStatusForShell(shells decimal.Decimal) StockStatus {
	switch {
	case !shells.IsPositive():
		return StockStatusOutOfStock
	case shells.LessThan(LowStockShellLimit):
		return StockStatusLow
	case shells.LessThan(ModerateStockShellLimit):
		return StockStatusModerate
	}
	return StockStatusHigh
}

func (s StockStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StockStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = StockStatus(i)
		return nil
	}
	switch str {
	case "Low":
		*s = StockStatusLow
	case "Moderate":
		*s = StockStatusModerate
	case "High":
		*s = StockStatusHigh
	default:
		*s = StockStatusOutOfStock
	}
	return nil
}

func (s StockStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *StockStatus) Scan(value interface{}) error {
	if value == nil {
		*s = StockStatusOutOfStock
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = StockStatus(v)
	case int:
		*s = StockStatus(v)
	}
	return nil
}
