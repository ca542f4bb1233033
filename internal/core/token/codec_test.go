package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec("secret", time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	signed, err := codec.Issue("principal-1", "admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.SubjectID != "principal-1" {
		t.Fatalf("unexpected subject: %q", claims.SubjectID)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected role: %q", claims.Role)
	}
}

func TestCodec_EmptySecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	codec, _ := NewCodec("secret-a", time.Hour)
	other, _ := NewCodec("secret-b", time.Hour)

	signed, err := codec.Issue("principal-1", "user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := other.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec, _ := NewCodec("secret", time.Hour)
	if _, err := codec.Verify("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec, _ := NewCodec("secret", time.Hour)

	// Sign an already-expired token with the same secret and algorithm.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "principal-1",
		"role": "user",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codec.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCodec_MissingSubject(t *testing.T) {
	codec, _ := NewCodec("secret", time.Hour)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := noSub.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codec.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
