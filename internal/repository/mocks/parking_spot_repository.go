// Package mocks содержит testify-моки репозиториев для тестов других слоев.
package mocks

import (
	"context"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/frontandrew/parkingcontrol/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ParkingSpotRepository - мок repository.ParkingSpotRepository
type ParkingSpotRepository struct {
	mock.Mock
}

var _ repository.ParkingSpotRepository = (*ParkingSpotRepository)(nil)

func (m *ParkingSpotRepository) ExistsByLicensePlateCar(ctx context.Context, licensePlateCar string) (bool, error) {
	args := m.Called(ctx, licensePlateCar)
	return args.Bool(0), args.Error(1)
}

func (m *ParkingSpotRepository) ExistsByParkingSpotNumber(ctx context.Context, parkingSpotNumber string) (bool, error) {
	args := m.Called(ctx, parkingSpotNumber)
	return args.Bool(0), args.Error(1)
}

func (m *ParkingSpotRepository) ExistsByApartmentAndBlock(ctx context.Context, apartment, block string) (bool, error) {
	args := m.Called(ctx, apartment, block)
	return args.Bool(0), args.Error(1)
}

func (m *ParkingSpotRepository) Save(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	args := m.Called(ctx, spot)
	if fn, ok := args.Get(0).(func(context.Context, *domain.ParkingSpot) *domain.ParkingSpot); ok {
		return fn(ctx, spot), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingSpot), args.Error(1)
}

func (m *ParkingSpotRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSpot, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ParkingSpot), args.Bool(1), args.Error(2)
}

func (m *ParkingSpotRepository) FindAll(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.ParkingSpot], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[*domain.ParkingSpot]), args.Error(1)
}

func (m *ParkingSpotRepository) Delete(ctx context.Context, spot *domain.ParkingSpot) error {
	args := m.Called(ctx, spot)
	return args.Error(0)
}

// WithinTx регистрирует вызов и выполняет fn на самом моке,
// если ожидание не вернуло ошибку начала транзакции
func (m *ParkingSpotRepository) WithinTx(ctx context.Context, fn func(repo repository.ParkingSpotRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}
