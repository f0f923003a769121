package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/frontandrew/parkingcontrol/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB запускает PostgreSQL в контейнере.
// Тест пропускается, если TEST_INTEGRATION не установлена.
func setupTestDB(t *testing.T) *config.DatabaseConfig {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		postgres.WithDatabase("parking_test"),
		postgres.WithUsername("parking"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return &config.DatabaseConfig{
		Host:            host,
		Port:            port.Port(),
		User:            "parking",
		Password:        "test-password",
		Database:        "parking_test",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}
}

func TestConnectAndMigrate(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()

	version, err := Migrate(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	// Повторное применение - без ошибки
	version, err = Migrate(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	pool, err := Connect(ctx, cfg)
	require.NoError(t, err)
	defer Close(pool)

	var exists bool
	err = pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'parking_spots')`,
	).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, NewHealthChecker(pool).Check(ctx))
}

func TestConnect_Unreachable(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:         "127.0.0.1",
		Port:         "1",
		User:         "nobody",
		Password:     "nothing",
		Database:     "none",
		SSLMode:      "disable",
		MaxOpenConns: 1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, cfg)
	assert.Error(t, err)
}
