package utils

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/studytrack-backend/internal/apperrors"
	"github.com/yungbote/studytrack-backend/internal/types"
)

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin("", "pw"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("missing email: got %v", err)
	}
	if err := ValidateLogin("a@b.com", ""); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("missing password: got %v", err)
	}
	if err := ValidateLogin("a@b.com", "pw"); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}
}

func TestHashPassword_VerifiesWithBcrypt(t *testing.T) {
	user := &types.User{Password: "s3cret"}
	if err := HashPassword(user); err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if user.Password == "s3cret" {
		t.Fatalf("password left in cleartext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestNormalizeUserFields_LowercasesEmailOnly(t *testing.T) {
	user := &types.User{
		Email:     "  Alice@Example.COM ",
		FirstName: " Alice ",
		LastName:  " Smith ",
		Password:  "KeepCase",
	}
	NormalizeUserFields(user)
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %q", user.Email)
	}
	if user.FirstName != "Alice" || user.LastName != "Smith" {
		t.Fatalf("names not trimmed: %q %q", user.FirstName, user.LastName)
	}
	if user.Password != "KeepCase" {
		t.Fatalf("password was modified: %q", user.Password)
	}
}
