package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/password"
	"github.com/ErlanBelekov/task-tracker/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultJWTTTL     = 24 * time.Hour
	minPasswordLength = 6
)

var validate = validator.New()

// AuthUsecase is the only holder of the JWT signing key. Nothing else in
// the process mints or parses session tokens.
type AuthUsecase struct {
	users  repository.UserRepository
	jwtKey []byte
	jwtTTL time.Duration
	now    func() time.Time
}

func NewAuthUsecase(users repository.UserRepository, jwtKey []byte, jwtTTL time.Duration) *AuthUsecase {
	if jwtTTL <= 0 {
		jwtTTL = defaultJWTTTL
	}
	return &AuthUsecase{
		users:  users,
		jwtKey: jwtKey,
		jwtTTL: jwtTTL,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for minting and validating tokens.
func (u *AuthUsecase) WithClock(now func() time.Time) *AuthUsecase {
	u.now = now
	return u
}

type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Register creates a user and returns its ID.
func (u *AuthUsecase) Register(ctx context.Context, email, secret string) (string, error) {
	email = domain.NormalizeEmail(email)
	if err := validate.Var(email, "required,email,max=254"); err != nil {
		return "", fmt.Errorf("register: email: %w", domain.ErrValidation)
	}
	if len(secret) < minPasswordLength || len(secret) > password.MaxLength {
		return "", fmt.Errorf("register: password must be %d-%d bytes: %w",
			minPasswordLength, password.MaxLength, domain.ErrValidation)
	}

	hash, err := password.Hash(secret)
	if err != nil {
		return "", fmt.Errorf("register: %w: %w", domain.ErrInternal, err)
	}

	user, err := u.users.Create(ctx, email, hash)
	if err != nil {
		return "", wrap("create user", err)
	}
	return user.ID, nil
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password return the same error.
func (u *AuthUsecase) Login(ctx context.Context, email, secret string) (Session, error) {
	// bcrypt only compares the first 72 bytes, so a longer secret could match
	// a password it merely starts with.
	if len(secret) > password.MaxLength {
		password.CheckDummy(secret)
		return Session{}, domain.ErrInvalidCredentials
	}

	user, err := u.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			password.CheckDummy(secret)
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, wrap("find user", err)
	}

	if !password.Check(user.PasswordHash, secret) {
		return Session{}, domain.ErrInvalidCredentials
	}

	now := u.now()
	expiresAt := now.Add(u.jwtTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return Session{}, fmt.Errorf("sign jwt: %w: %w", domain.ErrInternal, err)
	}
	return Session{Token: signed, ExpiresAt: expiresAt}, nil
}

// ResolveToken returns the user ID a valid token was minted for. It does
// no I/O.
func (u *AuthUsecase) ResolveToken(rawToken string) (string, error) {
	if rawToken == "" {
		return "", domain.ErrTokenInvalid
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims,
		func(*jwt.Token) (any, error) { return u.jwtKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
	)
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

// Me returns the profile of an already-resolved user.
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Token outlived its user record.
			return nil, domain.ErrTokenInvalid
		}
		return nil, wrap("find user", err)
	}
	return user, nil
}
