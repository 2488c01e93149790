package listing

import "errors"

var (
	ErrInvalidTitle       = errors.New("listing title must be 1-100 characters")
	ErrInvalidDescription = errors.New("listing description must not exceed 5000 characters")
	ErrInvalidType        = errors.New("listing type must be apartment or house")
	ErrInvalidPrice       = errors.New("listing price must be greater than 0")
	ErrInvalidMaxGuests   = errors.New("listing max guests must be greater than 0")
	ErrInvalidAddress     = errors.New("listing address is required")
	ErrDateUnavailable    = errors.New("date range overlaps an existing booking")
	ErrInvalidDateRange   = errors.New("check-in date cannot be after check-out date")
)

type Type string

const (
	TypeApartment Type = "apartment"
	TypeHouse     Type = "house"
)

func NewType(s string) (Type, error) {
	switch Type(s) {
	case TypeApartment, TypeHouse:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) String() string {
	return string(t)
}

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 5000
)
