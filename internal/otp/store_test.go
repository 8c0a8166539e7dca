package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewStore(rdb, ttl), mr
}

func TestStore_SaveAndVerify(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user@kw.ac.kr", "123456"))

	ok, err := store.Verify(ctx, "user@kw.ac.kr", "123456")
	require.NoError(t, err)
	require.True(t, ok)

	// A successful match consumes the code.
	ok, err = store.Verify(ctx, "user@kw.ac.kr", "123456")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_Verify_WrongCodeKeepsPending(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user@kw.ac.kr", "123456"))

	ok, err := store.Verify(ctx, "user@kw.ac.kr", "654321")
	require.NoError(t, err)
	require.False(t, ok)

	// The pending code survives a failed attempt.
	ok, err = store.Verify(ctx, "user@kw.ac.kr", "123456")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStore_Verify_UnknownEmail(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)

	ok, err := store.Verify(context.Background(), "nobody@kw.ac.kr", "123456")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_Save_ReplacesPendingCode(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user@kw.ac.kr", "111111"))
	require.NoError(t, store.Save(ctx, "user@kw.ac.kr", "222222"))

	ok, err := store.Verify(ctx, "user@kw.ac.kr", "111111")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = store.Verify(ctx, "user@kw.ac.kr", "222222")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStore_Verify_Expired(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	ctx := context.Background()

	base := time.Now()
	now := base
	store.WithClock(func() time.Time { return now })

	require.NoError(t, store.Save(ctx, "user@kw.ac.kr", "123456"))

	// Advance past the TTL; the redis key may still exist but the stored
	// expiry rejects the code.
	now = base.Add(5*time.Minute + time.Second)

	ok, err := store.Verify(ctx, "user@kw.ac.kr", "123456")
	require.NoError(t, err)
	require.False(t, ok)
}

// failingDelClient fails every DEL while the other commands work.
type failingDelClient struct {
	redis.Cmdable
}

func (f failingDelClient) Del(ctx context.Context, _ ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	cmd.SetErr(errors.New("connection lost"))
	return cmd
}

func TestStore_Verify_ConsumeFailureIsNotVerified(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	ctx := context.Background()

	broken := NewStore(failingDelClient{Cmdable: rdb}, 5*time.Minute)
	require.NoError(t, broken.Save(ctx, "user@kw.ac.kr", "123456"))

	// A matching code that cannot be consumed reports an error, not success.
	ok, err := broken.Verify(ctx, "user@kw.ac.kr", "123456")
	require.Error(t, err)
	require.False(t, ok)

	// The code is still pending; once redis recovers it verifies normally.
	healthy := NewStore(rdb, 5*time.Minute)
	ok, err = healthy.Verify(ctx, "user@kw.ac.kr", "123456")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		require.True(t, r >= '0' && r <= '9')
	}
}
