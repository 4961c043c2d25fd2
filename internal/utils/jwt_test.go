package utils

import (
	"testing"
)

func init() {
	SetJWTSecret("test-secret-key-for-testing")
}

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("abc123", 24)
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateSessionToken() returned empty token")
	}

	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestGenerateSessionToken_EmptyID(t *testing.T) {
	if _, err := GenerateSessionToken("", 24); err == nil {
		t.Error("GenerateSessionToken() should reject an empty session id")
	}
}

func TestParseSessionToken(t *testing.T) {
	token, _ := GenerateSessionToken("session-42", 24)

	claims, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("ParseSessionToken() error = %v", err)
	}

	if claims.SessionID != "session-42" {
		t.Errorf("SessionID = %q, expected %q", claims.SessionID, "session-42")
	}
}

func TestParseSessionToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		_, err := ParseSessionToken(token)
		if err == nil {
			t.Errorf("ParseSessionToken(%q) should return error", token)
		}
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	SetJWTSecret("original-secret")
	token, _ := GenerateSessionToken("sid", 24)

	SetJWTSecret("different-secret")
	_, err := ParseSessionToken(token)
	if err == nil {
		t.Error("ParseSessionToken should fail with wrong secret")
	}

	SetJWTSecret("test-secret-key-for-testing")
}

func TestParseSessionToken_Expired(t *testing.T) {
	token, _ := GenerateSessionToken("sid", -1)

	_, err := ParseSessionToken(token)
	if err == nil {
		t.Error("ParseSessionToken should fail for expired token")
	}
}
