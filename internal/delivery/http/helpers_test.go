package http

import (
	"context"
	"time"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/frontandrew/parkingcontrol/internal/usecase/parkingspot"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockParkingSpotService - мок для parking spot service
type MockParkingSpotService struct {
	mock.Mock
}

func (m *MockParkingSpotService) CreateParkingSpot(ctx context.Context, req *parkingspot.CreateParkingSpotRequest) (*domain.ParkingSpot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotService) GetParkingSpotByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSpot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingSpot), args.Error(1)
}

func (m *MockParkingSpotService) ListParkingSpots(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.ParkingSpot], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[*domain.ParkingSpot]), args.Error(1)
}

func (m *MockParkingSpotService) DeleteParkingSpot(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// CreateTestParkingSpot создает тестовую запись
func CreateTestParkingSpot(id uuid.UUID, number, plate string) *domain.ParkingSpot {
	return &domain.ParkingSpot{
		ID:                id,
		ParkingSpotNumber: number,
		LicensePlateCar:   plate,
		BrandCar:          "Toyota",
		ModelCar:          "Corolla",
		ColorCar:          "Black",
		ResponsibleName:   "Jane Doe",
		Apartment:         "101",
		Block:             "B1",
		RegistrationDate:  time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
}

// ValidCreateBody возвращает тело запроса на создание со всеми обязательными полями
func ValidCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"parkingSpotNumber": "A-01",
		"licensePlateCar":   "ABC1234",
		"brandCar":          "Toyota",
		"modelCar":          "Corolla",
		"colorCar":          "Black",
		"responsibleName":   "Jane Doe",
		"apartment":         "101",
		"block":             "B1",
	}
}

// WithURLParam добавляет параметр маршрута chi в контекст запроса
func WithURLParam(ctx context.Context, key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}
