package commands

import (
	"context"

	"homestay/internal/infra"
	"homestay/internal/pkg/errs"
	"homestay/internal/pkg/jwt"
	"homestay/internal/pkg/password"
	"homestay/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	TokenPair *TokenPair
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{uow: uow, jwtService: jwtService}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	snap, err := a.uow.CommandReads().UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(snap.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := a.issueTokenPair(snap.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{UserID: snap.ID, TokenPair: pair}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	// Re-check the account still exists before minting new tokens.
	if _, err := a.uow.CommandReads().UserByID(ctx, claims.UserID); err != nil {
		return nil, ErrTokenValidation
	}

	return a.issueTokenPair(claims.UserID)
}

func (a *authCommandsImpl) issueTokenPair(userID uuid.UUID) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
