//go:build unit || e2e

package dbtest

import (
	"context"
	"sync"
	"testing"
	"time"

	"homestay/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestPassword is the plaintext behind every fixture user's hash.
const TestPassword = "password123"

var (
	hashOnce     sync.Once
	passwordHash string
)

// bcrypt is slow enough that hashing once per process matters for suite
// runtime; every fixture user shares the same password anyway.
func testPasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		var err error
		passwordHash, err = password.HashPassword(TestPassword)
		require.NoError(t, err)
	})
	return passwordHash
}

// CreateTestUser inserts a user row directly. A nil walletID produces a
// host that cannot receive payouts.
func CreateTestUser(t *testing.T, db DBLike, name, email string, walletID *string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		`INSERT INTO users (id, name, email, avatar_url, password_hash, wallet_id)
		 VALUES ($1, $2, $3, '', $4, $5)
		 ON CONFLICT (email) DO NOTHING`,
		userID, name, email, testPasswordHash(t), walletID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

type TestListing struct {
	Title      string
	Type       string
	PriceCents int64
	MaxGuests  int32
	Country    string
	AdminArea  string
	City       string
}

// CreateTestListing inserts a listing with an empty availability index.
func CreateTestListing(t *testing.T, db DBLike, hostID uuid.UUID, l TestListing) uuid.UUID {
	t.Helper()

	if l.Type == "" {
		l.Type = "apartment"
	}
	if l.MaxGuests == 0 {
		l.MaxGuests = 4
	}

	listingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO listings
		   (id, title, description, type, price_cents, max_guests,
		    address, country, admin_area, city, host_id)
		 VALUES ($1, $2, '', $3, $4, $5, '123 Test Street', $6, $7, $8, $9)`,
		listingID, l.Title, l.Type, l.PriceCents, l.MaxGuests,
		l.Country, l.AdminArea, l.City, hostID)
	require.NoError(t, err)

	return listingID
}

// ResetDB truncates every application table so each subtest starts from a
// clean slate without re-running the schema.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE TABLE bookings, listings, users CASCADE")
	return err
}
