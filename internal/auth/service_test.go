package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/skillsenselab/rolegate/internal/auth"
	apperrors "github.com/skillsenselab/rolegate/internal/errors"
	"github.com/skillsenselab/rolegate/internal/logger"
	"github.com/skillsenselab/rolegate/internal/password"
	"github.com/skillsenselab/rolegate/internal/token"
	"github.com/skillsenselab/rolegate/internal/user"
)

func newService(t *testing.T) (*auth.Service, *user.MemoryStore, *token.Codec) {
	t.Helper()

	store := user.NewMemoryStore()
	hasher := password.NewBcryptHasher(password.WithCost(4))
	codec, err := token.NewCodec(&token.Config{Secret: "test-secret"})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	svc := auth.NewService(store, hasher, codec, logger.NewDefault("test"))
	return svc, store, codec
}

func TestNormalizeRoleName(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     string
		wantErr  string
		wantCode int
	}{
		{name: "plain role", in: "angel", want: "angel"},
		{name: "trims whitespace", in: "  instructor  ", want: "instructor"},
		{name: "empty defaults to student", in: "", want: "student"},
		{name: "whitespace defaults to student", in: "   ", want: "student"},
		{name: "admin forbidden", in: "admin", wantErr: "Role name cannot be admin", wantCode: 422},
		{name: "admin forbidden after trim", in: " admin ", wantErr: "Role name cannot be admin", wantCode: 422},
		{name: "32 chars allowed", in: strings.Repeat("a", 32), want: strings.Repeat("a", 32)},
		{name: "33 chars rejected", in: strings.Repeat("a", 33), wantErr: "Role name can not be longer than 32 chars", wantCode: 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.NormalizeRoleName(tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Fatalf("expected %q, got %q", tt.want, got)
				}
				return
			}
			appErr, ok := apperrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Message != tt.wantErr {
				t.Errorf("message: expected %q, got %q", tt.wantErr, appErr.Message)
			}
			if appErr.HTTPStatus != tt.wantCode {
				t.Errorf("status: expected %d, got %d", tt.wantCode, appErr.HTTPStatus)
			}
		})
	}
}

func TestRegister_StoresTrimmedRoleAndHash(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "anna", "1234", " angel ")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.Username != "anna" || created.RoleName != "angel" {
		t.Errorf("unexpected identity: %+v", created)
	}
	if created.ID == 0 {
		t.Error("expected assigned user id")
	}

	stored, err := store.FindByUsername(ctx, "anna")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if stored.PasswordHash == "1234" || stored.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
}

func TestRegister_DefaultRole(t *testing.T) {
	svc, _, _ := newService(t)

	created, err := svc.Register(context.Background(), "bob", "1234", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.RoleName != "student" {
		t.Fatalf("expected default role student, got %q", created.RoleName)
	}
}

func TestRegister_AdminRoleNotStored(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "mallory", "1234", "admin")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.HTTPStatus != 422 {
		t.Fatalf("expected 422, got %v", err)
	}
	if _, err := store.FindByUsername(ctx, "mallory"); err == nil {
		t.Fatal("rejected registration was stored")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "anna", "1234", "angel"); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(ctx, "anna", "other", "other")
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPStatus != 409 || appErr.Message != "Username already taken" {
		t.Fatalf("expected 409 Username already taken, got %d %q", appErr.HTTPStatus, appErr.Message)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _, codec := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "sue", "1234", "student"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login(ctx, "sue", "1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Message != "welcome sue" {
		t.Errorf("message: expected %q, got %q", "welcome sue", res.Message)
	}

	claims, err := codec.Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Username != "sue" || claims.RoleName != "student" {
		t.Errorf("claims do not snapshot identity: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "sue", "1234", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(ctx, "sue", "wrong")
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.HTTPStatus != 401 || appErr.Message != "invalid credentials" {
		t.Fatalf("expected 401 invalid credentials, got %v", err)
	}
}

// Unknown user and wrong password must be indistinguishable to the caller.
func TestLogin_UnknownUserSameAsWrongPassword(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "sue", "1234", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, errUnknown := svc.Login(ctx, "ghost", "1234")
	_, errWrong := svc.Login(ctx, "sue", "nope")

	a, okA := apperrors.AsAppError(errUnknown)
	b, okB := apperrors.AsAppError(errWrong)
	if !okA || !okB {
		t.Fatalf("expected AppErrors, got %v / %v", errUnknown, errWrong)
	}
	if a.HTTPStatus != b.HTTPStatus || a.Message != b.Message {
		t.Fatalf("failure shapes differ: %d %q vs %d %q", a.HTTPStatus, a.Message, b.HTTPStatus, b.Message)
	}
}
