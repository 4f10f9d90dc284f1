package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
)

// ExpiryPolicy decides what happens to a token whose expiry cannot be decoded.
type ExpiryPolicy int

const (
	// FailOpen keeps undecodable tokens.
	FailOpen ExpiryPolicy = iota
	// FailClosed treats undecodable tokens as absent.
	FailClosed
)

// ExpiryFilter wraps a Store and hides tokens whose exp claim is in the past.
type ExpiryFilter struct {
	Store
	policy ExpiryPolicy
	now    func() time.Time
	log    zerolog.Logger
}

// NewExpiryFilter decorates store with a local expiry check.
func NewExpiryFilter(store Store, policy ExpiryPolicy, log zerolog.Logger) *ExpiryFilter {
	return &ExpiryFilter{Store: store, policy: policy, now: time.Now, log: log}
}

// Read returns the stored session unless its token has expired.
func (f *ExpiryFilter) Read(ctx context.Context) (domain.Session, error) {
	sess, err := f.Store.Read(ctx)
	if err != nil || sess.Token == "" {
		return sess, err
	}

	expired, err := TokenExpired(sess.Token, f.now())
	if err != nil {
		if f.policy == FailClosed {
			f.log.Debug().Err(err).Msg("undecodable token treated as absent")
			return domain.Session{}, nil
		}
		f.log.Debug().Err(err).Msg("undecodable token kept")
		return sess, nil
	}
	if expired {
		return domain.Session{}, nil
	}
	return sess, nil
}

// TokenExpired decodes the exp claim of a JWT without verifying its
// signature. A token without exp never expires.
func TokenExpired(token string, now time.Time) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, err
	}
	if exp == nil {
		return false, nil
	}
	return !now.Before(exp.Time), nil
}
