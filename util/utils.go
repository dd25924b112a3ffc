package util

import (
	"github.com/shopspring/decimal"
)

// ToStandardUnits converts an integer base-denomination amount into its
// human-scale representation by shifting the decimal point left.
func ToStandardUnits(baseAmount string, exponent int32) (decimal.Decimal, error) {
	num, err := decimal.NewFromString(baseAmount)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return num.Shift(-exponent), nil
}

// StrNotSet will return true if the string value provided is empty
func StrNotSet(value string) bool {
	return len(value) == 0
}
