package validation_test

import (
	"strings"
	"testing"

	apperrors "github.com/skillsenselab/rolegate/internal/errors"
	"github.com/skillsenselab/rolegate/internal/validation"
)

type registerBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	RoleName string `json:"role_name"`
}

func TestValidate_OK(t *testing.T) {
	err := validation.Validate(&registerBody{Username: "anna", Password: "1234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	err := validation.Validate(&registerBody{})
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.HTTPStatus != 400 {
		t.Errorf("expected 400, got %d", appErr.HTTPStatus)
	}
	for _, field := range []string{"username", "password"} {
		if !strings.Contains(appErr.Message, field) {
			t.Errorf("message does not name %s: %q", field, appErr.Message)
		}
	}
}

func TestValidate_OptionalRoleName(t *testing.T) {
	err := validation.Validate(&registerBody{Username: "anna", Password: "1234", RoleName: ""})
	if err != nil {
		t.Fatalf("role_name must be optional: %v", err)
	}
}
