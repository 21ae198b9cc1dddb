package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/Vihaan004/Map-My-Major-sub000/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:               "test-secret-key-for-unit-testing",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-1", "admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected UserID=user-1, got %s", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("expected Role=admin, got %s", claims.Role)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("expected access token, got %s", claims.TokenType)
	}
	if claims.Issuer != "mapmymajor" {
		t.Errorf("unexpected issuer %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("jti should be set")
	}
	if r := claims.Remaining(); r <= 14*time.Minute || r > 15*time.Minute {
		t.Errorf("unexpected remaining lifetime %v", r)
	}
}

func TestGenerateRefreshToken_RememberMe(t *testing.T) {
	m := newTestManager()

	short, _ := m.GenerateRefreshToken("user-1", "student", false)
	long, _ := m.GenerateRefreshToken("user-1", "student", true)

	sc, err := m.ParseToken(short)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	lc, err := m.ParseToken(long)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if sc.TokenType != TokenTypeRefresh || sc.RememberMe {
		t.Errorf("unexpected default refresh claims: %+v", sc)
	}
	if !lc.RememberMe {
		t.Error("remember-me flag lost")
	}
	if lc.ExpiresAt.Sub(sc.ExpiresAt.Time) < 6*24*time.Hour {
		t.Error("remember-me token should outlive the default one")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _ := newTestManager().GenerateAccessToken("user-1", "student")

	other := NewManager(&config.AuthConfig{JWTSecret: "another-secret-of-enough-length", AccessTokenTTL: time.Minute})
	if _, err := other.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing", AccessTokenTTL: -time.Minute})
	token, _ := m.GenerateAccessToken("user-1", "student")

	if _, err := m.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: "user-1", TokenType: TokenTypeAccess}
	claims.Issuer = "mapmymajor"
	claims.ExpiresAt = jwtv5.NewNumericDate(time.Now().Add(time.Hour))
	token, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims).SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := newTestManager().ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := newTestManager().ParseToken("not.a.token"); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
