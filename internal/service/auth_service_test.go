package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func signToken(t *testing.T, secret []byte, claims IdentityClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifyIdentityToken(t *testing.T) {
	secret := []byte("test-secret")
	svc := NewAuthService(nil, secret, zap.NewNop())

	tokenString := signToken(t, secret, IdentityClaims{
		Email: "teacher@example.com",
		Name:  "Anna",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.VerifyIdentityToken(tokenString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Email != "teacher@example.com" || claims.Name != "Anna" {
		t.Fatalf("wrong claims: %+v", claims)
	}
}

func TestVerifyIdentityTokenWrongSecret(t *testing.T) {
	svc := NewAuthService(nil, []byte("right-secret"), zap.NewNop())

	tokenString := signToken(t, []byte("wrong-secret"), IdentityClaims{Email: "x@example.com"})

	if _, err := svc.VerifyIdentityToken(tokenString); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestVerifyIdentityTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	svc := NewAuthService(nil, secret, zap.NewNop())

	tokenString := signToken(t, secret, IdentityClaims{
		Email: "x@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := svc.VerifyIdentityToken(tokenString); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestVerifyIdentityTokenMissingEmail(t *testing.T) {
	secret := []byte("test-secret")
	svc := NewAuthService(nil, secret, zap.NewNop())

	tokenString := signToken(t, secret, IdentityClaims{Name: "NoEmail"})

	_, err := svc.VerifyIdentityToken(tokenString)
	if err == nil || !strings.Contains(err.Error(), "email") {
		t.Fatalf("token without email claim must be rejected, got %v", err)
	}
}

func TestVerifyIdentityTokenGarbage(t *testing.T) {
	svc := NewAuthService(nil, []byte("test-secret"), zap.NewNop())

	if _, err := svc.VerifyIdentityToken("not.a.token"); err == nil {
		t.Fatal("garbage input must be rejected")
	}
}
