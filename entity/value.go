package entity

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Value wraps an accessed field value and provides type conversion helpers.
type Value struct {
	Raw any
}

// IsNil is true for an absent value.
func (v Value) IsNil() bool {
	return v.Raw == nil
}

// String returns the value as plain text.
func (v Value) String() string {

	switch raw := v.Raw.(type) {
	case nil:
		return ""
	case string:
		return raw
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64)
	case time.Time:
		return raw.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Int returns the value as an int.
func (v Value) Int() (int, error) {

	switch raw := v.Raw.(type) {
	case int:
		return raw, nil
	case int64:
		return int(raw), nil
	}
	return 0, errors.Errorf("value is not an int: %T", v.Raw)
}

// Float returns the value as a float64.
func (v Value) Float() (float64, error) {
	f, ok := v.Raw.(float64)
	if !ok {
		return 0, errors.Errorf("value is not a float64: %T", v.Raw)
	}
	return f, nil
}

// Time returns the value as a time.Time.
func (v Value) Time() (time.Time, error) {
	t, ok := v.Raw.(time.Time)
	if !ok {
		return time.Time{}, errors.Errorf("value is not a time.Time: %T", v.Raw)
	}
	return t, nil
}

func timeValue(tm *time.Time) Value {
	if tm == nil {
		return Value{}
	}
	return Value{Raw: *tm}
}
