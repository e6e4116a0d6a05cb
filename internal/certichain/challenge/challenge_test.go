package challenge_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/certichain/internal/certichain/challenge"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// exerciseStore runs the behaviour shared by every Store.
func exerciseStore(t *testing.T, s challenge.Store) {
	ctx := context.Background()
	c := challenge.Challenge{Wallet: "W1", Nonce: "n1", ExpiresAt: time.Now().Add(time.Minute)}

	require.NoError(t, s.Put(ctx, c))

	_, err := s.Take(ctx, "W2", "n1")
	require.ErrorIs(t, err, challenge.ErrNotFound, "bound to the wallet")

	got, err := s.Take(ctx, "W1", "n1")
	require.NoError(t, err)
	require.Equal(t, "W1", got.Wallet)

	_, err = s.Take(ctx, "W1", "n1")
	require.ErrorIs(t, err, challenge.ErrNotFound, "single use")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, challenge.NewMemoryStore())
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	s := challenge.NewMemoryStore()
	s.Now = func() time.Time { return now }

	require.NoError(t, s.Put(ctx, challenge.Challenge{Wallet: "W", Nonce: "old", ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, s.Put(ctx, challenge.Challenge{Wallet: "W", Nonce: "new", ExpiresAt: now.Add(time.Minute)}))

	_, err := s.Take(ctx, "W", "old")
	require.ErrorIs(t, err, challenge.ErrNotFound)

	require.NoError(t, s.Put(ctx, challenge.Challenge{Wallet: "W", Nonce: "stale", ExpiresAt: now}))
	n, err := s.Purge(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 1, s.Len())
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := challenge.NewRedisClient(ctx, endpoint, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	s := challenge.NewRedisStore(client)
	exerciseStore(t, s)

	err = s.Put(ctx, challenge.Challenge{Wallet: "W", Nonce: "past", ExpiresAt: time.Now().Add(-time.Second)})
	require.Error(t, err)
}
