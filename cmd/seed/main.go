// Command seed populates a development database with a few users and
// listings so the API can be exercised without going through signup and
// geocoding first.
package main

import (
	"context"
	"log/slog"
	"os"

	"homestay/internal/domain/listing"
	"homestay/internal/infra/db"
	"homestay/internal/infra/repository"
	"homestay/internal/pkg/config"
	"homestay/internal/pkg/password"

	"github.com/google/uuid"
)

type seedUser struct {
	name     string
	email    string
	avatar   string
	password string
	walletID *string
}

type seedListing struct {
	hostEmail   string
	title       string
	description string
	listingType listing.Type
	priceCents  int64
	maxGuests   int
	address     string
	region      listing.Region
}

func main() {
	if err := run(); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed completed")
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if err := db.ApplySchema(ctx, pool); err != nil {
		return err
	}

	wallet := func(id string) *string { return &id }
	users := []seedUser{
		{
			name:     "Johnathan",
			email:    "johnathan@example.com",
			avatar:   "https://i.pravatar.cc/150?u=johnathan",
			password: "secret-password-1",
			walletID: wallet("acct_seed_johnathan"),
		},
		{
			name:     "Sara",
			email:    "sara@example.com",
			avatar:   "https://i.pravatar.cc/150?u=sara",
			password: "secret-password-2",
			walletID: wallet("acct_seed_sara"),
		},
		{
			name:     "Danny",
			email:    "danny@example.com",
			avatar:   "https://i.pravatar.cc/150?u=danny",
			password: "secret-password-3",
			walletID: nil,
		},
	}

	userRepo := repository.NewUserRepository(pool)
	listingRepo := repository.NewListingRepository(pool)

	hostIDs := make(map[string]uuid.UUID, len(users))
	for _, u := range users {
		hash, err := password.HashPassword(u.password)
		if err != nil {
			return err
		}

		id := uuid.New()
		err = userRepo.Create(ctx, repository.CreateUserParams{
			ID:           id,
			Name:         u.name,
			Email:        u.email,
			AvatarURL:    u.avatar,
			PasswordHash: hash,
			WalletID:     u.walletID,
		})
		if err != nil {
			return err
		}
		hostIDs[u.email] = id
		slog.Info("seeded user", "email", u.email)
	}

	listings := []seedListing{
		{
			hostEmail:   "johnathan@example.com",
			title:       "Clean and fully furnished apartment",
			description: "A spacious apartment close to the city centre with a private balcony.",
			listingType: listing.TypeApartment,
			priceCents:  12424,
			maxGuests:   3,
			address:     "469 Tremblay Court, Toronto, ON",
			region: listing.Region{
				Country: "Canada", AdminArea: "Ontario", City: "Toronto",
			},
		},
		{
			hostEmail:   "sara@example.com",
			title:       "Cozy, clean, and affordable studio",
			description: "Studio in a quiet neighbourhood, ten minutes from downtown by subway.",
			listingType: listing.TypeApartment,
			priceCents:  9500,
			maxGuests:   2,
			address:     "3605 Dundas Street West, Toronto, ON",
			region: listing.Region{
				Country: "Canada", AdminArea: "Ontario", City: "Toronto",
			},
		},
		{
			hostEmail:   "sara@example.com",
			title:       "Beach house with private access",
			description: "Large beach house with a private pathway and room for the whole family.",
			listingType: listing.TypeHouse,
			priceCents:  40000,
			maxGuests:   8,
			address:     "100 Ocean Avenue, Los Angeles, CA",
			region: listing.Region{
				Country: "United States", AdminArea: "California", City: "Los Angeles",
			},
		},
	}

	for _, l := range listings {
		entity, err := listing.NewListing(
			l.title, l.description, l.listingType,
			l.priceCents, l.maxGuests, l.address, l.region,
			hostIDs[l.hostEmail],
		)
		if err != nil {
			return err
		}
		if err := listingRepo.Create(ctx, entity); err != nil {
			return err
		}
		slog.Info("seeded listing", "title", l.title)
	}

	return nil
}
