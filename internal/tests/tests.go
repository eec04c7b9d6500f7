// Package tests builds apps and servers for route and client tests.
package tests

import (
	"context"
	"net"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/services"
	"github.com/stretchr/testify/require"
)

const (
	TestToken    = "test-token"
	TestUsername = "test-user"
	TestPassword = "test-pass"

	// TestSeed seeds the CPU selector of test apps.
	TestSeed = 1
)

// NewConfig returns a config for tests. The CPU never waits.
func NewConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:        "127.0.0.1",
		ServerPort:        "0",
		BasicAuthUsername: TestUsername,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
		CPUDelay:          0,
	}
}

// NewApp builds an app without Redis.
func NewApp() *fiber.App {
	return internal.BuildApp(NewConfig(), &services.Services{}, othello.NewSelector(TestSeed))
}

// NewAppWithRedis builds an app connected to REVERSI_TEST_REDIS_URL, or skips the test.
func NewAppWithRedis(t *testing.T) *fiber.App {
	t.Helper()

	url := os.Getenv("REVERSI_TEST_REDIS_URL")
	if url == "" {
		t.Skip("REVERSI_TEST_REDIS_URL is not set")
	}

	client, err := services.InitRedis(context.Background(), url)
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
	})

	return internal.BuildApp(NewConfig(), &services.Services{Redis: client}, othello.NewSelector(TestSeed))
}

// StartServer serves app on a free local port and returns its address, e.g. "127.0.0.1:41234".
func StartServer(t *testing.T, app *fiber.App) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		_ = app.Listener(ln)
	}()

	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return ln.Addr().String()
}
