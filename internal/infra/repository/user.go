package repository

import (
	"context"

	"homestay/internal/infra"
	"homestay/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

type CreateUserParams struct {
	ID           uuid.UUID
	Name         string
	Email        string
	AvatarURL    string
	PasswordHash string
	WalletID     *string
}

func (r *UserRepository) Create(ctx context.Context, params CreateUserParams) error {
	const query = `
		INSERT INTO users (id, name, email, avatar_url, password_hash, wallet_id)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		params.ID, params.Name, params.Email, params.AvatarURL,
		params.PasswordHash, params.WalletID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}

	return nil
}

// AddIncome accumulates a captured booking total onto the host record.
func (r *UserRepository) AddIncome(ctx context.Context, userID uuid.UUID, amountCents int64) error {
	const query = `
		UPDATE users
		SET income_cents = income_cents + $1, updated_at = now()
		WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, amountCents, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to add host income", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("host not found", nil, infra.KindNotFound)
	}

	return nil
}
