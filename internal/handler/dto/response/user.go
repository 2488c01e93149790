package response

import (
	"time"

	"homestay/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatarUrl"`
	HasWallet bool      `json:"hasWallet"`
	// IncomeCents is only disclosed to the profile's owner.
	IncomeCents *int64    `json:"incomeCents,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromUserDetail(um *queries.UserDetail) *UserResponse {
	resp := &UserResponse{}
	_ = copier.Copy(resp, &um.UserView)
	resp.IncomeCents = nil
	if um.ViewerIsOwner {
		income := um.IncomeCents
		resp.IncomeCents = &income
	}
	return resp
}

func FromUserView(um *queries.UserView) *UserResponse {
	resp := &UserResponse{}
	_ = copier.Copy(resp, um)
	resp.IncomeCents = nil
	return resp
}
