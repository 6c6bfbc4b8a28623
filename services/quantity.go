package services

import (
	"encoding/json"
	"fmt"
	"math"

	"inventory/apperrors"
)

// wholeNumber parses n as an integer. Integral floats such as "5.0" are
// accepted.
func wholeNumber(n json.Number) (int, bool) {
	if i, err := n.Int64(); err == nil {
		if i < math.MinInt32 || i > math.MaxInt32 {
			return 0, false
		}
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// quantity resolves an optional quantity field, using fallback when it was
// not supplied.
func quantity(field string, n *json.Number, fallback int) (int, error) {
	if n == nil {
		return fallback, nil
	}
	v, ok := wholeNumber(*n)
	if !ok {
		return 0, apperrors.InvalidField(field, fmt.Sprintf("%s must be a whole number", field))
	}
	return v, nil
}

func checkQuantities(total, avail int) error {
	if total < 0 || avail < 0 {
		return &apperrors.Error{
			Kind:    apperrors.KindInvalidInput,
			Message: "Quantities must be >= 0",
			Fields:  negativeFields(total, avail),
		}
	}
	if avail > total {
		return apperrors.InvalidField("qtyAvailable", "qtyAvailable cannot exceed qtyTotal")
	}
	return nil
}

func negativeFields(total, avail int) map[string]string {
	fields := map[string]string{}
	if total < 0 {
		fields["qtyTotal"] = "qtyTotal must be >= 0"
	}
	if avail < 0 {
		fields["qtyAvailable"] = "qtyAvailable must be >= 0"
	}
	return fields
}
