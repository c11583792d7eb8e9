//go:build integration || e2e

// Package redistest starts one Redis container per test process.
package redistest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	redisContainerOnce sync.Once
	redisContainer     testcontainers.Container
	redisAddr          string
	redisStartErr      error
)

// Addr returns host:port of the shared container, starting it on first use.
func Addr(t *testing.T) string {
	t.Helper()
	redisContainerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		redisContainer, redisStartErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7",
				ExposedPorts: []string{"6379/tcp"},
				Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
				WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
				Labels:       map[string]string{"purpose": "e2e-tests"},
			},
			Started: true,
		})
		if redisStartErr != nil {
			return
		}

		var (
			host string
			port nat.Port
		)
		host, redisStartErr = redisContainer.Host(ctx)
		if redisStartErr != nil {
			return
		}
		port, redisStartErr = redisContainer.MappedPort(ctx, nat.Port("6379/tcp"))
		if redisStartErr != nil {
			return
		}
		redisAddr = fmt.Sprintf("%s:%s", host, port.Port())
	})
	require.NoError(t, redisStartErr, "failed to start redis container")
	return redisAddr
}

// NewClient connects to the shared container and flushes the selected db on cleanup.
func NewClient(t *testing.T) *goredis.Client {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{Addr: Addr(t)})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err(), "redis not reachable")

	t.Cleanup(func() {
		if err := client.FlushDB(context.Background()).Err(); err != nil {
			slog.Warn("Failed to flush redis", "error", err.Error())
		}
		_ = client.Close()
	})
	return client
}
