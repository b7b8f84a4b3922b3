package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/infrastructure/memory"
	"github.com/ErlanBelekov/task-tracker/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
)

const testJWTKey = "test-jwt-secret-at-least-32-chars!!"

func newAuth() *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(memory.NewUserRepository(), []byte(testJWTKey), time.Hour)
}

// ---- Register ----

func TestRegister_DuplicateEmail_Conflict(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice@x.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := uc.Register(ctx, "alice@x.com", "secret1")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestRegister_EmailIsCaseNormalized(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	if _, err := uc.Register(ctx, "Alice@X.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := uc.Register(ctx, "  alice@x.COM ", "secret1"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
	if _, err := uc.Login(ctx, "ALICE@x.com", "secret1"); err != nil {
		t.Errorf("login with different case: %v", err)
	}
}

func TestRegister_InvalidInput_Validation(t *testing.T) {
	uc := newAuth()
	cases := []struct {
		name, email, secret string
	}{
		{"bad email", "not-an-email", "secret1"},
		{"empty email", "", "secret1"},
		{"short password", "bob@x.com", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.email, tc.secret)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

// ---- Login / ResolveToken ----

func TestLogin_RoundTripsThroughResolveToken(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	id, err := uc.Register(ctx, "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := uc.Login(ctx, "alice@x.com", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("wrong password err = %v, want ErrUnauthorized", err)
	}

	session, err := uc.Login(ctx, "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	got, err := uc.ResolveToken(session.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != id {
		t.Errorf("resolved = %q, want %q", got, id)
	}
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	if _, err := uc.Register(ctx, "alice@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, errUnknown := uc.Login(ctx, "nobody@x.com", "secret1")
	_, errWrong := uc.Login(ctx, "alice@x.com", "secret2")

	if errUnknown == nil || errWrong == nil {
		t.Fatal("expected both logins to fail")
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("errors differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestLogin_SecretLongerThanBcryptLimitIsRejected(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	stored := strings.Repeat("a", 72)
	if _, err := uc.Register(ctx, "alice@x.com", stored); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := uc.Login(ctx, "alice@x.com", stored+"DIFFERENT-SUFFIX")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}

	if _, err := uc.Login(ctx, "alice@x.com", stored); err != nil {
		t.Errorf("exact 72-byte password: %v", err)
	}
}

func TestResolveToken_Expired(t *testing.T) {
	now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	uc := newAuth().WithClock(func() time.Time { return now })
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	session, err := uc.Login(ctx, "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !session.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("expires_at = %v, want %v", session.ExpiresAt, now.Add(time.Hour))
	}

	now = now.Add(2 * time.Hour)
	if _, err := uc.ResolveToken(session.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestResolveToken_Rejects(t *testing.T) {
	uc := newAuth()

	sign := func(key string, method jwt.SigningMethod, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	cases := map[string]string{
		"empty":           "",
		"garbage":         "not.a.jwt",
		"wrong key":       sign("another-secret-that-is-32-chars!!!", jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "exp": exp}),
		"wrong algorithm": sign(testJWTKey, jwt.SigningMethodHS512, jwt.MapClaims{"sub": "u1", "exp": exp}),
		"no expiry":       sign(testJWTKey, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}),
		"no subject":      sign(testJWTKey, jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp}),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uc.ResolveToken(tok); !errors.Is(err, domain.ErrTokenInvalid) {
				t.Errorf("err = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

// ---- Me ----

func TestMe_UnknownUser_Unauthorized(t *testing.T) {
	uc := newAuth()
	if _, err := uc.Me(context.Background(), "ghost"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestMe_ReturnsProfile(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	id, err := uc.Register(ctx, "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := uc.Me(ctx, id)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if user.Email != "alice@x.com" {
		t.Errorf("email = %q", user.Email)
	}
}
