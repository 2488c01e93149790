package user

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidName  = errors.New("display name is required")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	if !emailPattern.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }

type User struct {
	id          uuid.UUID
	name        string
	email       Email
	avatarURL   string
	walletID    *string
	incomeCents int64
	createdAt   time.Time
	updatedAt   time.Time
}

func NewUser(name string, email Email, avatarURL string) (*User, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		avatarURL: avatarURL,
	}, nil
}

// ReconstructUser rebuilds a user from storage. The email is trusted as
// stored and not re-validated.
func ReconstructUser(
	id uuid.UUID,
	name string,
	email string,
	avatarURL string,
	walletID *string,
	incomeCents int64,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:          id,
		name:        name,
		email:       Email{value: email},
		avatarURL:   avatarURL,
		walletID:    walletID,
		incomeCents: incomeCents,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// CanReceivePayouts reports whether the user has a connected payment
// account; hosts without one cannot be booked.
func (u *User) CanReceivePayouts() bool {
	return u.walletID != nil && *u.walletID != ""
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) AvatarURL() string    { return u.avatarURL }
func (u *User) WalletID() *string    { return u.walletID }
func (u *User) IncomeCents() int64   { return u.incomeCents }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
