package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/frontandrew/parkingcontrol/internal/pkg/config"
	"github.com/frontandrew/parkingcontrol/internal/pkg/database"
	"github.com/frontandrew/parkingcontrol/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestPool поднимает PostgreSQL в контейнере, применяет миграции
// и возвращает пул. Тест пропускается без TEST_INTEGRATION.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"docker.io/postgres:16-alpine",
		tcpostgres.WithDatabase("parking_test"),
		tcpostgres.WithUsername("parking"),
		tcpostgres.WithPassword("test-password"),
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

	cfg := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Port(),
		User:            "parking",
		Password:        "test-password",
		Database:        "parking_test",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}

	_, err = database.Migrate(cfg)
	require.NoError(t, err)

	pool, err := database.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(pool) })

	return pool
}

func newSpot(number, plate, apartment, block string) *domain.ParkingSpot {
	return &domain.ParkingSpot{
		ParkingSpotNumber: number,
		LicensePlateCar:   plate,
		BrandCar:          "Toyota",
		ModelCar:          "Corolla",
		ColorCar:          "Black",
		ResponsibleName:   "Jane Doe",
		Apartment:         apartment,
		Block:             block,
		RegistrationDate:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestParkingSpotRepository_Lifecycle(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewParkingSpotRepository(pool)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newSpot("A-01", "ABC1234", "101", "B1"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, saved.ID)

	found, ok, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved.LicensePlateCar, found.LicensePlateCar)
	assert.Equal(t, time.UTC, found.RegistrationDate.Location())
	assert.True(t, saved.RegistrationDate.Equal(found.RegistrationDate))

	exists, err := repo.ExistsByLicensePlateCar(ctx, "ABC1234")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByParkingSpotNumber(ctx, "A-02")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByApartmentAndBlock(ctx, "101", "B1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByApartmentAndBlock(ctx, "101", "B2")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Delete(ctx, found))

	_, ok, err = repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, repo.Delete(ctx, found), domain.ErrParkingSpotNotFound)
}

func TestParkingSpotRepository_UniqueBackstop(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewParkingSpotRepository(pool)
	ctx := context.Background()

	_, err := repo.Save(ctx, newSpot("A-01", "ABC1234", "101", "B1"))
	require.NoError(t, err)

	_, err = repo.Save(ctx, newSpot("A-02", "ABC1234", "102", "B1"))
	assert.ErrorIs(t, err, domain.ErrParkingSpotStorageConflict)

	_, err = repo.Save(ctx, newSpot("A-03", "XYZ9876", "101", "B1"))
	assert.ErrorIs(t, err, domain.ErrParkingSpotStorageConflict)
}

func TestParkingSpotRepository_FindAll(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewParkingSpotRepository(pool)
	ctx := context.Background()

	empty, err := repo.FindAll(ctx, domain.DefaultPageRequest())
	require.NoError(t, err)
	assert.True(t, empty.Empty)
	assert.Len(t, empty.Content, 0)

	for _, s := range []*domain.ParkingSpot{
		newSpot("C-03", "CCC0003", "103", "B1"),
		newSpot("A-01", "AAA0001", "101", "B1"),
		newSpot("B-02", "BBB0002", "102", "B1"),
	} {
		_, err := repo.Save(ctx, s)
		require.NoError(t, err)
	}

	page, err := repo.FindAll(ctx, domain.PageRequest{Page: 0, Size: 2, Sort: "id", Direction: domain.SortAsc})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Less(t, page.Content[0].ID.String(), page.Content[1].ID.String())

	byNumber, err := repo.FindAll(ctx, domain.PageRequest{Page: 1, Size: 2, Sort: "parkingSpotNumber", Direction: domain.SortDesc})
	require.NoError(t, err)
	require.Len(t, byNumber.Content, 1)
	assert.Equal(t, "A-01", byNumber.Content[0].ParkingSpotNumber)
	assert.True(t, byNumber.Last)
}

func TestParkingSpotRepository_WithinTxRollback(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewParkingSpotRepository(pool)
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := repo.WithinTx(ctx, func(tx repository.ParkingSpotRepository) error {
		if _, err := tx.Save(ctx, newSpot("A-01", "ABC1234", "101", "B1")); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	exists, err := repo.ExistsByLicensePlateCar(ctx, "ABC1234")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestParkingSpotRepository_ConcurrentCreate проверяет, что две транзакции
// с одинаковым номером не могут обе закоммититься
func TestParkingSpotRepository_ConcurrentCreate(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewParkingSpotRepository(pool)
	ctx := context.Background()

	const workers = 5
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.WithinTx(ctx, func(tx repository.ParkingSpotRepository) error {
				exists, err := tx.ExistsByLicensePlateCar(ctx, "ABC1234")
				if err != nil {
					return err
				}
				if exists {
					return domain.NewLicensePlateConflict()
				}
				_, err = tx.Save(ctx, newSpot("A-0"+string(rune('1'+i)), "ABC1234", "10"+string(rune('1'+i)), "B1"))
				return err
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	page, err := repo.FindAll(ctx, domain.DefaultPageRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)
}
