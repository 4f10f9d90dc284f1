// Package redis persists client sessions in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/session"
	"github.com/loccar/loccar-web/internal/infrastructure/store/seal"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// legacyKeys are names used by older front-end builds. Clear removes them too.
var legacyKeys = []string{"auth_token", "token", "user", "currentUser"}

// TokenStore is the Redis-backed session.Store of a single client.
// Keys: <prefix>:<clientID>:token and <prefix>:<clientID>:user
type TokenStore struct {
	client   goredis.UniversalClient
	sealer   *seal.Sealer
	prefix   string
	clientID string
	ttl      time.Duration
	log      zerolog.Logger
}

// Options configures the stores built by NewFactory.
type Options struct {
	Prefix string
	// TTL is applied on every Save. Zero means keys never expire.
	TTL    time.Duration
	Sealer *seal.Sealer
}

// NewFactory returns a session.StoreFactory producing stores that share client.
func NewFactory(client goredis.UniversalClient, opts Options, log zerolog.Logger) session.StoreFactory {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "loccar:session"
	}
	return func(clientID string) session.Store {
		return &TokenStore{
			client:   client,
			sealer:   opts.Sealer,
			prefix:   prefix,
			clientID: clientID,
			ttl:      opts.TTL,
			log:      log.With().Str("client_id", clientID).Logger(),
		}
	}
}

func (s *TokenStore) key(name string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, s.clientID, name)
}

// Save writes token and user in one MULTI/EXEC.
func (s *TokenStore) Save(ctx context.Context, token string, user *domain.User) error {
	sealedToken, err := s.sealer.Seal(token)
	if err != nil {
		return err
	}

	var sealedUser string
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		if sealedUser, err = s.sealer.Seal(string(raw)); err != nil {
			return err
		}
	}

	_, err = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, s.key(tokenKey), sealedToken, s.ttl)
		if user != nil {
			p.Set(ctx, s.key(userKey), sealedUser, s.ttl)
		} else {
			p.Del(ctx, s.key(userKey))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

// Read returns the persisted session. A missing or undecodable value reads
// as absent.
func (s *TokenStore) Read(ctx context.Context) (domain.Session, error) {
	vals, err := s.client.MGet(ctx, s.key(tokenKey), s.key(userKey)).Result()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return domain.Session{}, fmt.Errorf("redis read session: %w", err)
	}

	var sess domain.Session
	if len(vals) > 0 {
		if raw, ok := vals[0].(string); ok {
			token, err := s.sealer.Open(raw)
			if err != nil {
				s.log.Warn().Err(err).Msg("stored token unreadable, treating as absent")
			} else {
				sess.Token = token
			}
		}
	}
	if len(vals) > 1 {
		if raw, ok := vals[1].(string); ok {
			sess.User = s.decodeUser(raw)
		}
	}
	return sess.Normalize(), nil
}

func (s *TokenStore) decodeUser(raw string) *domain.User {
	plain, err := s.sealer.Open(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("stored user unreadable, treating as absent")
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(plain), &u); err != nil {
		s.log.Warn().Err(err).Msg("stored user corrupt, treating as absent")
		return nil
	}
	return &u
}

// Clear deletes every authentication key of the client. Deleting missing keys
// is not an error.
func (s *TokenStore) Clear(ctx context.Context) error {
	keys := []string{s.key(tokenKey), s.key(userKey)}
	for _, k := range legacyKeys {
		keys = append(keys, s.key(k))
	}
	if err := s.client.Del(ctx, dedupe(keys)...).Err(); err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
