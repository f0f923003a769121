package repository

import (
	"context"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/google/uuid"
)

// ParkingSpotRepository определяет методы для работы с парковочными местами.
// Все методы - прямой доступ к хранилищу, без бизнес-логики.
type ParkingSpotRepository interface {
	// ExistsByLicensePlateCar проверяет, занят ли номер автомобиля
	ExistsByLicensePlateCar(ctx context.Context, licensePlateCar string) (bool, error)

	// ExistsByParkingSpotNumber проверяет, занято ли парковочное место
	ExistsByParkingSpotNumber(ctx context.Context, parkingSpotNumber string) (bool, error)

	// ExistsByApartmentAndBlock проверяет, есть ли место у квартиры в блоке
	ExistsByApartmentAndBlock(ctx context.Context, apartment, block string) (bool, error)

	// Save сохраняет новую запись и возвращает ее.
	// Нарушение уникального ограничения возвращается как domain.ErrParkingSpotStorageConflict.
	Save(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error)

	// FindByID возвращает запись по ID; второй результат false, если записи нет
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSpot, bool, error)

	// FindAll возвращает страницу записей
	FindAll(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.ParkingSpot], error)

	// Delete удаляет запись
	Delete(ctx context.Context, spot *domain.ParkingSpot) error

	// WithinTx выполняет fn в одной транзакции.
	// Транзакция коммитится, если fn вернула nil, иначе откатывается.
	WithinTx(ctx context.Context, fn func(repo ParkingSpotRepository) error) error
}
