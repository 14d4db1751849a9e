package entity

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// plainNumber admits signed plain decimals with bounded digits; no exponent notation
var plainNumber = regexp.MustCompile(`^[+-]?\d{1,15}(\.\d{1,10})?$`)

var ErrNotPlainNumber = errors.New("must be a plain decimal number")

// ParseNumber reads a price, quantity or amount cell
func ParseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !plainNumber.MatchString(s) {
		return decimal.Zero, ErrNotPlainNumber
	}
	return decimal.NewFromString(s)
}
