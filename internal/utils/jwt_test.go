package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-event-organizer/models"
	"github.com/golang-jwt/jwt/v5"
)

var testUser = models.User{ID: 123, Username: "alice", Role: models.RoleClient}

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"

	token, err := GenerateJWTToken(issuer, testUser, time.Hour, "secret-key")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, token.Issuer)
	}
	if token.Username() != "alice" {
		t.Errorf("expected subject 'alice', got %s", token.Username())
	}
	if token.UserID != 123 || token.Role != models.RoleClient {
		t.Errorf("unexpected identity claims: id=%d role=%s", token.UserID, token.Role)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, testUser, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	key := "secret-key"

	genToken, _ := GenerateJWTToken(issuer, testUser, 5*time.Minute, key)

	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.UserID != testUser.ID {
		t.Errorf("expected userID %d, got %d", testUser.ID, parsedToken.UserID)
	}
	if parsedToken.Username() != testUser.Username {
		t.Errorf("expected username %s, got %s", testUser.Username, parsedToken.Username())
	}
	if parsedToken.Role != testUser.Role {
		t.Errorf("expected role %s, got %s", testUser.Role, parsedToken.Role)
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	issuer := "test-issuer"

	genToken, _ := GenerateJWTToken(issuer, testUser, time.Hour, "correct-key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", issuer)
	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected signature error, got %v", err)
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	issuer := "test-issuer"
	key := "key"
	genToken, _ := GenerateJWTToken(issuer, testUser, -time.Second, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected expired token error, got %v", err)
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	key := "key"
	genToken, _ := GenerateJWTToken("real-issuer", testUser, time.Hour, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, "fake-issuer")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_NoIdentity(t *testing.T) {
	key := "key"
	genToken, _ := GenerateJWTToken("iss", models.User{Username: "ghost"}, time.Hour, key)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, key, "iss")
	if err == nil {
		t.Error("expected error for token without id and role, got nil")
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss")
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}
