package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestVerifyTokenValid(t *testing.T) {
	tokenStr := signToken(t, testSecret, Claims{
		Email: "owner@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := VerifyToken(testSecret, tokenStr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "user-123")
	}
	if claims.Email != "owner@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "owner@example.com")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	tokenStr := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := VerifyToken(testSecret, tokenStr); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("err = %v, want token expired", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	tokenStr := signToken(t, "other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := VerifyToken(testSecret, tokenStr); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestVerifyTokenMissingSubject(t *testing.T) {
	tokenStr := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := VerifyToken(testSecret, tokenStr); err == nil {
		t.Fatal("expected error for token without subject")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken(testSecret, "not.a.token"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestVerifyTokenNoSecret(t *testing.T) {
	if _, err := VerifyToken("", "anything"); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("err = %v, want ErrNoSecret", err)
	}
}

func TestVerifyTokenRejectsUnsignedAlg(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
	})
	tokenStr, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	if _, err := VerifyToken(testSecret, tokenStr); err == nil {
		t.Fatal("expected none-algorithm token to be rejected")
	}
}
