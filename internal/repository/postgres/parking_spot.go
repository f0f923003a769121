package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/frontandrew/parkingcontrol/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const parkingSpotColumns = `id, parking_spot_number, license_plate_car, brand_car, model_car, color_car,
		responsible_name, apartment, block, registration_date`

// sortColumns сопоставляет поле сортировки из API с колонкой таблицы
var sortColumns = map[string]string{
	"id":                "id",
	"parkingSpotNumber": "parking_spot_number",
	"licensePlateCar":   "license_plate_car",
	"brandCar":          "brand_car",
	"modelCar":          "model_car",
	"colorCar":          "color_car",
	"responsibleName":   "responsible_name",
	"apartment":         "apartment",
	"block":             "block",
	"registrationDate":  "registration_date",
}

type parkingSpotRepository struct {
	db   DBTX
	pool TxBeginner // nil внутри транзакции
}

// NewParkingSpotRepository создает репозиторий поверх пула подключений
func NewParkingSpotRepository(pool *pgxpool.Pool) repository.ParkingSpotRepository {
	return &parkingSpotRepository{db: pool, pool: pool}
}

func (r *parkingSpotRepository) ExistsByLicensePlateCar(ctx context.Context, licensePlateCar string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM parking_spots WHERE license_plate_car = $1)`, licensePlateCar)
}

func (r *parkingSpotRepository) ExistsByParkingSpotNumber(ctx context.Context, parkingSpotNumber string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM parking_spots WHERE parking_spot_number = $1)`, parkingSpotNumber)
}

func (r *parkingSpotRepository) ExistsByApartmentAndBlock(ctx context.Context, apartment, block string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM parking_spots WHERE apartment = $1 AND block = $2)`, apartment, block)
}

func (r *parkingSpotRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *parkingSpotRepository) Save(ctx context.Context, spot *domain.ParkingSpot) (*domain.ParkingSpot, error) {
	query := `
		INSERT INTO parking_spots (` + parkingSpotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if spot.ID == uuid.Nil {
		spot.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		spot.ID,
		spot.ParkingSpotNumber,
		spot.LicensePlateCar,
		spot.BrandCar,
		spot.ModelCar,
		spot.ColorCar,
		spot.ResponsibleName,
		spot.Apartment,
		spot.Block,
		spot.RegistrationDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrParkingSpotStorageConflict, err)
		}
		return nil, err
	}

	return spot, nil
}

func (r *parkingSpotRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSpot, bool, error) {
	query := `
		SELECT ` + parkingSpotColumns + `
		FROM parking_spots
		WHERE id = $1
	`

	spot, err := scanParkingSpot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return spot, true, nil
}

func (r *parkingSpotRepository) FindAll(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.ParkingSpot], error) {
	column, ok := sortColumns[req.Sort]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if req.Direction == domain.SortDesc {
		direction = "DESC"
	}

	// Колонка и направление берутся только из белого списка выше.
	// id добавлен вторым ключом, чтобы порядок страниц был стабильным.
	query := fmt.Sprintf(`
		SELECT %s
		FROM parking_spots
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2
	`, parkingSpotColumns, column, direction)

	rows, err := r.db.Query(ctx, query, req.Size, req.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spots := []*domain.ParkingSpot{}
	for rows.Next() {
		spot, err := scanParkingSpot(rows)
		if err != nil {
			return nil, err
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM parking_spots`).Scan(&total); err != nil {
		return nil, err
	}

	return domain.NewPage(spots, req, total), nil
}

func (r *parkingSpotRepository) Delete(ctx context.Context, spot *domain.ParkingSpot) error {
	result, err := r.db.Exec(ctx, `DELETE FROM parking_spots WHERE id = $1`, spot.ID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrParkingSpotNotFound
	}

	return nil
}

func (r *parkingSpotRepository) WithinTx(ctx context.Context, fn func(repo repository.ParkingSpotRepository) error) error {
	// Уже внутри транзакции - выполняем в ней же
	if r.pool == nil {
		return fn(r)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // после Commit это no-op

	if err := fn(&parkingSpotRepository{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrParkingSpotStorageConflict, err)
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanParkingSpot(row pgx.Row) (*domain.ParkingSpot, error) {
	spot := &domain.ParkingSpot{}
	err := row.Scan(
		&spot.ID,
		&spot.ParkingSpotNumber,
		&spot.LicensePlateCar,
		&spot.BrandCar,
		&spot.ModelCar,
		&spot.ColorCar,
		&spot.ResponsibleName,
		&spot.Apartment,
		&spot.Block,
		&spot.RegistrationDate,
	)
	if err != nil {
		return nil, err
	}
	spot.RegistrationDate = spot.RegistrationDate.UTC()
	return spot, nil
}
