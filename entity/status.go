package entity

import (
	"fmt"

	"github.com/pkg/errors"
)

// Status is the visibility state of a product.
type Status string

const (
	Visible   Status = "VISIBLE"
	Hidden    Status = "HIDDEN"
	InRemoval Status = "IN_REMOVAL"
)

// ErrInvalidStatus is the cause of every StatusError.
var ErrInvalidStatus = errors.New("invalid product status")

// StatusError reports a status value outside of the accepted set.
type StatusError struct {
	Value   string
	Allowed []Status
}

func (se *StatusError) Error() string {
	return fmt.Sprintf("%s: %q not one of %v", ErrInvalidStatus, se.Value, se.Allowed)
}

// Cause supports errors.Cause.
func (se *StatusError) Cause() error {
	return ErrInvalidStatus
}

// Unwrap supports errors.Is.
func (se *StatusError) Unwrap() error {
	return ErrInvalidStatus
}

var (
	allStatuses  = []Status{Visible, Hidden, InRemoval}
	formStatuses = []Status{Visible, Hidden}
)

// ParseStatus returns the recognized status or a *StatusError.
func ParseStatus(value string) (Status, error) {
	return checkStatus(value, allStatuses)
}

// FormStatus returns the status if a form can carry it, VISIBLE or HIDDEN.
func FormStatus(value string) (Status, error) {
	return checkStatus(value, formStatuses)
}

// CheckFormProduct returns the product unchanged when its status is one a form can carry.
func CheckFormProduct(prd Product) (Product, error) {

	_, err := FormStatus(prd.Status)
	if err != nil {
		return prd, errors.Wrapf(err, "product %d", prd.Id)
	}
	return prd, nil
}

func checkStatus(value string, allowed []Status) (Status, error) {

	for _, status := range allowed {
		if string(status) == value {
			return status, nil
		}
	}
	return "", &StatusError{Value: value, Allowed: allowed}
}
