package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kw-muji/team-match-api/internal/constants"
)

const keyPrefix = "auth:code:"

// Store keeps one pending verification code per email in redis.
// The redis key expiry and the stored expiresAt both enforce the TTL;
// the clock is injected so expiry is testable without sleeping.
type Store struct {
	rdb redis.Cmdable
	ttl time.Duration
	now func() time.Time
}

func NewStore(rdb redis.Cmdable, ttl time.Duration) *Store {
	return &Store{
		rdb: rdb,
		ttl: ttl,
		now: time.Now,
	}
}

// WithClock overrides the time source (used for testing).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Save stores the code for the email, replacing any earlier pending code.
func (s *Store) Save(ctx context.Context, email, code string) error {
	expiresAt := s.now().Add(s.ttl).Unix()
	value := fmt.Sprintf("%s:%d", code, expiresAt)
	if err := s.rdb.Set(ctx, keyPrefix+email, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store auth code: %w", err)
	}
	return nil
}

// Verify reports whether code matches the pending code for email and has
// not expired. A successful match consumes the code.
func (s *Store) Verify(ctx context.Context, email, code string) (bool, error) {
	key := keyPrefix + email
	value, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read auth code: %w", err)
	}

	stored, expiresAt, ok := splitValue(value)
	if !ok || s.now().Unix() > expiresAt {
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			return false, fmt.Errorf("failed to discard stale auth code: %w", err)
		}
		return false, nil
	}

	if stored != code {
		return false, nil
	}

	// A code that cannot be consumed must not count as verified, or a
	// transient redis failure would leave it replayable.
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("failed to consume auth code: %w", err)
	}
	return true, nil
}

func splitValue(value string) (code string, expiresAt int64, ok bool) {
	idx := strings.LastIndex(value, ":")
	if idx < 0 {
		return "", 0, false
	}
	expiresAt, err := strconv.ParseInt(value[idx+1:], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return value[:idx], expiresAt, true
}

// GenerateCode returns a random numeric verification code.
func GenerateCode() (string, error) {
	const digits = "0123456789"
	code := make([]byte, constants.AuthCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}
