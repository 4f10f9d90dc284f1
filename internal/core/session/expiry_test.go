package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	past := signedToken(t, jwt.MapClaims{"sub": "a", "exp": now.Add(-time.Minute).Unix()})
	future := signedToken(t, jwt.MapClaims{"sub": "a", "exp": now.Add(time.Hour).Unix()})
	noExp := signedToken(t, jwt.MapClaims{"sub": "a"})

	if expired, err := TokenExpired(past, now); err != nil || !expired {
		t.Fatalf("past token: expired=%v err=%v", expired, err)
	}
	if expired, err := TokenExpired(future, now); err != nil || expired {
		t.Fatalf("future token: expired=%v err=%v", expired, err)
	}
	if expired, err := TokenExpired(noExp, now); err != nil || expired {
		t.Fatalf("token without exp: expired=%v err=%v", expired, err)
	}
	if _, err := TokenExpired("opaque-token", now); err == nil {
		t.Fatal("expected decode error for a non-JWT token")
	}
}

func TestExpiryFilter_HidesExpiredToken(t *testing.T) {
	now := time.Now()
	store := &fakeStore{sess: domain.Session{
		Token: signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
		User:  admin,
	}}
	f := NewExpiryFilter(store, FailOpen, zerolog.Nop())

	sess, err := f.Read(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Token != "" || sess.User != nil {
		t.Fatalf("expired session should read as absent, got %+v", sess)
	}
}

func TestExpiryFilter_KeepsValidToken(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	f := NewExpiryFilter(&fakeStore{sess: domain.Session{Token: tok, User: admin}}, FailClosed, zerolog.Nop())

	sess, _ := f.Read(context.Background())
	if sess.Token != tok {
		t.Fatal("valid token was dropped")
	}
}

func TestExpiryFilter_UndecodableTokenFollowsPolicy(t *testing.T) {
	store := &fakeStore{sess: domain.Session{Token: "opaque", User: admin}}

	open, _ := NewExpiryFilter(store, FailOpen, zerolog.Nop()).Read(context.Background())
	if open.Token != "opaque" {
		t.Fatal("fail-open must keep an undecodable token")
	}

	closed, _ := NewExpiryFilter(store, FailClosed, zerolog.Nop()).Read(context.Background())
	if closed.Token != "" {
		t.Fatal("fail-closed must drop an undecodable token")
	}
}

func TestExpiryFilter_RehydratesUnauthenticated(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	store := NewExpiryFilter(&fakeStore{sess: domain.Session{Token: tok, User: admin}}, FailOpen, zerolog.Nop())

	st := New(context.Background(), "c", store, zerolog.Nop())
	if st.IsAuthenticated() {
		t.Fatal("expired token must not authenticate a rehydrated state")
	}
}
