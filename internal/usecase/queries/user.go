package queries

import (
	"context"

	"homestay/internal/infra"
	"homestay/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.New("user not found")
	ErrNotOwner     = errs.New("viewer does not own this record")
)

type UserQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*UserDetail, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
	// ListBookings is private to the record's owner.
	ListBookings(ctx context.Context, userID, viewerID uuid.UUID, page, limit int) (*Page[BookingView], error)
	// ListListings is public.
	ListListings(ctx context.Context, userID uuid.UUID, page, limit int) (*Page[ListingListItem], error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	FindBookings(ctx context.Context, tenantID uuid.UUID, limit, offset int32) ([]BookingView, int64, error)
	FindListings(ctx context.Context, hostID uuid.UUID, limit, offset int32) ([]ListingListItem, int64, error)
}

type userQueriesImpl struct {
	store UserReadStore
}

func NewUserQueries(store UserReadStore) UserQueries {
	return &userQueriesImpl{store: store}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, viewerID uuid.UUID) (*UserDetail, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &UserDetail{
		UserView:      *view,
		ViewerIsOwner: viewerID != uuid.Nil && viewerID == view.ID,
	}, nil
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	view, err := q.store.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *userQueriesImpl) ListBookings(ctx context.Context, userID, viewerID uuid.UUID, page, limit int) (*Page[BookingView], error) {
	if viewerID == uuid.Nil || viewerID != userID {
		return nil, ErrNotOwner
	}

	offset, normalized := NormalizePage(page, limit)
	bookings, total, err := q.store.FindBookings(ctx, userID, normalized, offset)
	if err != nil {
		return nil, err
	}

	return &Page[BookingView]{Total: total, Result: bookings}, nil
}

func (q *userQueriesImpl) ListListings(ctx context.Context, userID uuid.UUID, page, limit int) (*Page[ListingListItem], error) {
	offset, normalized := NormalizePage(page, limit)
	listings, total, err := q.store.FindListings(ctx, userID, normalized, offset)
	if err != nil {
		return nil, err
	}

	return &Page[ListingListItem]{Total: total, Result: listings}, nil
}
