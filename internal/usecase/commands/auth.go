package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"booking-platform/internal/domain/auth"
	"booking-platform/internal/domain/user"
	reqdto "booking-platform/internal/handler/dto/request"
	"booking-platform/internal/infra"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/pkg/jwt"
	"booking-platform/internal/pkg/password"
	"booking-platform/internal/usecase/shared"
)

//go:generate mockgen -source=auth.go -destination=../../../tests/mock/commands/mock_auth_commands.go -package=commandsmock

var (
	ErrUserNotFound         = errs.Define(errs.ErrNotFound, errs.CodeNotFound, "user not found")
	ErrInvalidCredentials   = auth.ErrInvalidCredentials
	ErrUserInactive         = errs.Define(errs.ErrForbidden, errs.CodeForbidden, "user inactive")
	ErrEmailTaken           = errs.Define(errs.ErrConflict, errs.CodeDuplicate, "email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.Define(errs.ErrValidation, errs.CodeValidation, "token validation failed")
)

type LoginResult struct {
	UserID     uuid.UUID
	TokenPair  *TokenPair
	IsReplayed bool
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clock clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*LoginResult, error) {
	reg, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	role := reg.Role()

	hash, err := password.HashPassword(reg.Password().Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	newUser := user.NewUser(reg.Email(), reg.DisplayName(), hash, role, a.clock.Now())
	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Users().Create(ctx, tx.DB(), newUser)
		if createErr != nil {
			return createErr
		}
		userID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Wrap(err, "failed to register user")
	}

	pair, err := a.issueTokens(userID, role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{UserID: userID, TokenPair: pair}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	u, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	pair, err := a.issueTokens(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), u.ID(), a.clock.Now())
	})
	if err != nil {
		// login already succeeded, only last_login is stale
		slog.Warn("failed to update last login", "user_id", u.ID(), "error", err.Error())
	}

	return &LoginResult{
		UserID:     u.ID(),
		TokenPair:  pair,
		IsReplayed: false,
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.WithCause(ErrTokenValidation, err)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	// Validate user still exists and is active
	u, err := a.uow.CommandReads().UserByID(ctx, claims.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	// role comes from storage so a demotion takes effect on the next refresh
	return a.issueTokens(u.ID(), u.Role())
}

func (a *authCommandsImpl) issueTokens(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials auth.Credentials) (*user.User, error) {
	u, err := a.uow.CommandReads().UserByEmail(ctx, credentials.Email())
	if err != nil {
		// same error and roughly the same latency as a password mismatch
		password.BurnCompare(credentials.Password().Value())
		return nil, ErrInvalidCredentials
	}

	if err := password.ComparePassword(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	return u, nil
}
