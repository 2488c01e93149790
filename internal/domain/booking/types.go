package booking

import "errors"

var (
	ErrInvalidDateRange = errors.New("check-in date cannot be after check-out date")
	ErrInvalidPrice     = errors.New("nightly price must be greater than 0")
	ErrInvalidTotal     = errors.New("total price must be greater than 0")
)
