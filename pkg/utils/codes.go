package utils

import (
	"fmt"
	"math/rand"
	"unicode/utf8"
)

// IntN returns a uniform random integer in [0, n)
type IntN func(n int) int

// DefaultIntN draws from the process-wide generator
var DefaultIntN IntN = rand.Intn

// GenerateSystemCode builds "<first letter of category>-<10000..99999>".
// Codes are not checked for uniqueness.
func GenerateSystemCode(category string, intN IntN) string {
	if category == "" {
		return ""
	}
	if intN == nil {
		intN = DefaultIntN
	}
	first, _ := utf8.DecodeRuneInString(category)
	return fmt.Sprintf("%c-%d", first, 10000+intN(90000))
}

// GenerateReceiveNo builds a receive number such as "R004211"
func GenerateReceiveNo(intN IntN) string {
	if intN == nil {
		intN = DefaultIntN
	}
	return fmt.Sprintf("R%06d", intN(1000000))
}
