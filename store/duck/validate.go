package duck

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	nt "shopkeep/entity"
)

// Validate checks values before they are stored.
// Numbers left empty or unparsable arrive as NaN and are rejected here.
func Validate(values nt.Values) (err error) {

	switch {
	case strings.TrimSpace(values.Title) == "":
		err = errors.Wrapf(ErrInvalidValues, "title is required")

	case !finite(values.Price) || values.Price < 0:
		err = errors.Wrapf(ErrInvalidValues, "price must be a number >= 0, got %v", values.Price)

	case !finite(values.CountInStock) || values.CountInStock < 0 || values.CountInStock != math.Trunc(values.CountInStock):
		err = errors.Wrapf(ErrInvalidValues, "countInStock must be a whole number >= 0, got %v", values.CountInStock)
	}
	if err != nil {
		return
	}

	_, err = nt.FormStatus(string(values.Status))
	if err != nil {
		err = errors.Wrapf(ErrInvalidValues, "%s", err)
	}
	return
}

func finite(num float64) bool {
	return !math.IsNaN(num) && !math.IsInf(num, 0)
}
