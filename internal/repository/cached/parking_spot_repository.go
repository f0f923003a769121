package cached

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/frontandrew/parkingcontrol/internal/pkg/logger"
	"github.com/frontandrew/parkingcontrol/internal/pkg/redis"
	"github.com/frontandrew/parkingcontrol/internal/repository"
	"github.com/google/uuid"
)

const parkingSpotCachePrefix = "parking_spot:"

// Cache - операции кэша, которые использует репозиторий (реализуется *redis.Client)
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

var (
	_ Cache                            = (*redis.Client)(nil)
	_ repository.ParkingSpotRepository = (*ParkingSpotRepository)(nil)
)

// ParkingSpotRepository добавляет кэширование FindByID к repository.ParkingSpotRepository.
// Ошибки кэша не прерывают запрос: источником истины остается БД.
type ParkingSpotRepository struct {
	repo   repository.ParkingSpotRepository
	cache  Cache
	ttl    time.Duration
	logger logger.Logger

	// deleted не nil внутри транзакции: ключи удаленных записей
	// инвалидируются только после коммита
	deleted *[]uuid.UUID
}

// NewParkingSpotRepository создает кэширующий репозиторий
func NewParkingSpotRepository(repo repository.ParkingSpotRepository, cache Cache, ttl time.Duration, log logger.Logger) *ParkingSpotRepository {
	return &ParkingSpotRepository{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func cacheKey(id uuid.UUID) string {
	return parkingSpotCachePrefix + id.String()
}

// FindByID сначала ищет запись в кэше, при промахе идет в БД и кэширует найденное.
// Отсутствие записи не кэшируется.
func (r *ParkingSpotRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSpot, bool, error) {
	key := cacheKey(id)

	data, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var spot domain.ParkingSpot
		if jsonErr := json.Unmarshal(data, &spot); jsonErr == nil {
			return &spot, true, nil
		}
		r.logger.Warn("Corrupted parking spot cache entry", map[string]interface{}{"key": key})
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Parking spot cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}

	spot, ok, err := r.repo.FindByID(ctx, id)
	if err != nil || !ok {
		return spot, ok, err
	}

	if payload, err := json.Marshal(spot); err == nil {
		if err := r.cache.Set(ctx, key, payload, r.ttl); err != nil {
			r.logger.Warn("Parking spot cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return spot, true, nil
}

// Delete удаляет запись и инвалидирует кэш.
// Внутри транзакции инвалидация откладывается до коммита.
func (r *ParkingSpotRepository) Delete(ctx context.Context, spot *domain.ParkingSpot) error {
	if err := r.repo.Delete(ctx, spot); err != nil {
		return err
	}

	if r.deleted != nil {
		*r.deleted = append(*r.deleted, spot.ID)
		return nil
	}
	r.invalidate(ctx, spot.ID)
	return nil
}

// Save не кэширует запись: она попадет в кэш при первом чтении
func (r *ParkingSpotRepository) Save(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	return r.repo.Save(ctx, spot)
}

func (r *ParkingSpotRepository) ExistsByLicensePlateCar(ctx context.Context, licensePlateCar string) (bool, error) {
	return r.repo.ExistsByLicensePlateCar(ctx, licensePlateCar)
}

func (r *ParkingSpotRepository) ExistsByParkingSpotNumber(ctx context.Context, parkingSpotNumber string) (bool, error) {
	return r.repo.ExistsByParkingSpotNumber(ctx, parkingSpotNumber)
}

func (r *ParkingSpotRepository) ExistsByApartmentAndBlock(ctx context.Context, apartment, block string) (bool, error) {
	return r.repo.ExistsByApartmentAndBlock(ctx, apartment, block)
}

// FindAll не кэшируется: страницы зависят от параметров и быстро устаревают
func (r *ParkingSpotRepository) FindAll(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.ParkingSpot], error) {
	return r.repo.FindAll(ctx, req)
}

// WithinTx выполняет fn в транзакции. Пока транзакция открыта, параллельное
// чтение может вернуть удаляемую запись в кэш, поэтому ключи удаленных
// записей сбрасываются только после успешного коммита.
func (r *ParkingSpotRepository) WithinTx(ctx context.Context, fn func(repo repository.ParkingSpotRepository) error) error {
	// Вложенный вызов: ключи копятся во внешней транзакции
	if r.deleted != nil {
		return r.repo.WithinTx(ctx, func(tx repository.ParkingSpotRepository) error {
			return fn(r.inTx(tx, r.deleted))
		})
	}

	var deleted []uuid.UUID
	err := r.repo.WithinTx(ctx, func(tx repository.ParkingSpotRepository) error {
		return fn(r.inTx(tx, &deleted))
	})
	if err != nil {
		return err
	}

	for _, id := range deleted {
		r.invalidate(ctx, id)
	}
	return nil
}

func (r *ParkingSpotRepository) inTx(tx repository.ParkingSpotRepository, deleted *[]uuid.UUID) *ParkingSpotRepository {
	txRepo := NewParkingSpotRepository(tx, r.cache, r.ttl, r.logger)
	txRepo.deleted = deleted
	return txRepo
}

func (r *ParkingSpotRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Del(ctx, cacheKey(id)); err != nil {
		r.logger.Warn("Parking spot cache invalidation failed", map[string]interface{}{
			"parking_spot_id": id,
			"error":           err.Error(),
		})
	}
}
