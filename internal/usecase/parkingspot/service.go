package parkingspot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/frontandrew/parkingcontrol/internal/pkg/logger"
	"github.com/frontandrew/parkingcontrol/internal/repository"
	"github.com/google/uuid"
)

// CreateParkingSpotRequest - запрос на регистрацию парковочного места.
// registrationDate намеренно отсутствует: дату выставляет сервер.
type CreateParkingSpotRequest struct {
	ParkingSpotNumber string `json:"parkingSpotNumber" validate:"required,max=10"`
	LicensePlateCar   string `json:"licensePlateCar" validate:"required,max=7"`
	BrandCar          string `json:"brandCar" validate:"required,max=70"`
	ModelCar          string `json:"modelCar" validate:"required,max=70"`
	ColorCar          string `json:"colorCar" validate:"required,max=70"`
	ResponsibleName   string `json:"responsibleName" validate:"required,max=130"`
	Apartment         string `json:"apartment" validate:"required,max=30"`
	Block             string `json:"block" validate:"required,max=30"`
}

// Normalize убирает пробелы по краям полей. Регистр и пробелы внутри
// сохраняются: уникальность проверяется по точному значению.
func (r *CreateParkingSpotRequest) Normalize() {
	r.ParkingSpotNumber = strings.TrimSpace(r.ParkingSpotNumber)
	r.LicensePlateCar = strings.TrimSpace(r.LicensePlateCar)
	r.BrandCar = strings.TrimSpace(r.BrandCar)
	r.ModelCar = strings.TrimSpace(r.ModelCar)
	r.ColorCar = strings.TrimSpace(r.ColorCar)
	r.ResponsibleName = strings.TrimSpace(r.ResponsibleName)
	r.Apartment = strings.TrimSpace(r.Apartment)
	r.Block = strings.TrimSpace(r.Block)
}

// Service содержит бизнес-логику работы с парковочными местами
type Service struct {
	repo   repository.ParkingSpotRepository
	logger logger.Logger
	now    func() time.Time
}

// Option настраивает Service
type Option func(*Service)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService создает новый экземпляр ParkingSpotService
func NewService(repo repository.ParkingSpotRepository, logger logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateParkingSpot проверяет уникальность и сохраняет новую запись.
// Проверки и вставка выполняются в одной транзакции.
func (s *Service) CreateParkingSpot(ctx context.Context, req *CreateParkingSpotRequest) (*domain.ParkingSpot, error) {
	req.Normalize()

	s.logger.Info("Creating parking spot", map[string]interface{}{
		"parking_spot_number": req.ParkingSpotNumber,
		"license_plate_car":   req.LicensePlateCar,
		"apartment":           req.Apartment,
		"block":               req.Block,
	})

	var created *domain.ParkingSpot
	err := s.repo.WithinTx(ctx, func(repo repository.ParkingSpotRepository) error {
		if err := validateUnique(ctx, repo, req); err != nil {
			return err
		}

		spot := &domain.ParkingSpot{
			ParkingSpotNumber: req.ParkingSpotNumber,
			LicensePlateCar:   req.LicensePlateCar,
			BrandCar:          req.BrandCar,
			ModelCar:          req.ModelCar,
			ColorCar:          req.ColorCar,
			ResponsibleName:   req.ResponsibleName,
			Apartment:         req.Apartment,
			Block:             req.Block,
			RegistrationDate:  s.now().UTC(),
		}

		saved, err := repo.Save(ctx, spot)
		if err != nil {
			return fmt.Errorf("failed to save parking spot: %w", err)
		}
		created = saved
		return nil
	})
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			s.logger.Warn("Parking spot conflict", map[string]interface{}{
				"field": string(conflict.Field),
			})
			return nil, conflict
		}

		s.logger.Error("Failed to create parking spot", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create parking spot: %w", err)
	}

	s.logger.Info("Parking spot created successfully", map[string]interface{}{
		"parking_spot_id": created.ID,
	})

	return created, nil
}

// validateUnique проверяет правила уникальности строго по порядку:
// номер автомобиля, номер места, пара квартира/блок
func validateUnique(ctx context.Context, repo repository.ParkingSpotRepository, req *CreateParkingSpotRequest) error {
	exists, err := repo.ExistsByLicensePlateCar(ctx, req.LicensePlateCar)
	if err != nil {
		return fmt.Errorf("failed to check license plate: %w", err)
	}
	if exists {
		return domain.NewLicensePlateConflict()
	}

	exists, err = repo.ExistsByParkingSpotNumber(ctx, req.ParkingSpotNumber)
	if err != nil {
		return fmt.Errorf("failed to check parking spot number: %w", err)
	}
	if exists {
		return domain.NewSpotNumberConflict()
	}

	exists, err = repo.ExistsByApartmentAndBlock(ctx, req.Apartment, req.Block)
	if err != nil {
		return fmt.Errorf("failed to check apartment and block: %w", err)
	}
	if exists {
		return domain.NewApartmentBlockConflict()
	}

	return nil
}

// GetParkingSpotByID возвращает запись по ID или domain.ErrParkingSpotNotFound
func (s *Service) GetParkingSpotByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSpot, error) {
	spot, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get parking spot: %w", err)
	}
	if !ok {
		return nil, domain.ErrParkingSpotNotFound
	}
	return spot, nil
}

// ListParkingSpots возвращает страницу записей (по умолчанию: 0, 10, id ASC)
func (s *Service) ListParkingSpots(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.ParkingSpot], error) {
	page, err := s.repo.FindAll(ctx, req.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to list parking spots: %w", err)
	}
	return page, nil
}

// DeleteParkingSpot удаляет запись; отсутствующая запись - domain.ErrParkingSpotNotFound
func (s *Service) DeleteParkingSpot(ctx context.Context, id uuid.UUID) error {
	err := s.repo.WithinTx(ctx, func(repo repository.ParkingSpotRepository) error {
		spot, ok, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get parking spot: %w", err)
		}
		if !ok {
			return domain.ErrParkingSpotNotFound
		}
		return repo.Delete(ctx, spot)
	})
	if err != nil {
		if errors.Is(err, domain.ErrParkingSpotNotFound) {
			return domain.ErrParkingSpotNotFound
		}
		return fmt.Errorf("failed to delete parking spot: %w", err)
	}

	s.logger.Info("Parking spot deleted", map[string]interface{}{
		"parking_spot_id": id,
	})
	return nil
}
