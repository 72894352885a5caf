package money

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDiscount = errors.New("invalid discount percent")
)

// maxMajorUnits keeps major*100 well inside int64
const maxMajorUnits = 9e15

// ToMinorUnits converts a major-unit amount (like 12.34) into minor units (1234).
func ToMinorUnits(major float64) (int64, error) {
	if math.IsNaN(major) || math.IsInf(major, 0) || major < 0 {
		return 0, ErrInvalidAmount
	}
	if major > maxMajorUnits {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return int64(math.Round(major * 100.0)), nil
}

// ApplyDiscount returns amount reduced by percent, in major units.
// The percent must be finite and within [0,100].
func ApplyDiscount(amount, percent float64) (float64, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) || percent < 0 || percent > 100 {
		return 0, ErrInvalidDiscount
	}
	return amount * (1 - percent/100), nil
}

// FormatMinor renders minor units as a plain decimal string, e.g. 80000 -> "800.00".
func FormatMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
