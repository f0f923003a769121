package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParkingSpot - закрепление парковочного места за квартирой
// ВАЖНО: номер места, номер автомобиля и пара (apartment, block) уникальны
type ParkingSpot struct {
	ID                uuid.UUID `json:"id"`
	ParkingSpotNumber string    `json:"parkingSpotNumber"` // Номер места (уникальный)
	LicensePlateCar   string    `json:"licensePlateCar"`   // Номер автомобиля (уникальный)
	BrandCar          string    `json:"brandCar"`
	ModelCar          string    `json:"modelCar"`
	ColorCar          string    `json:"colorCar"`
	ResponsibleName   string    `json:"responsibleName"`
	Apartment         string    `json:"apartment"`
	Block             string    `json:"block"`
	RegistrationDate  time.Time `json:"registrationDate"` // Всегда UTC, выставляется сервером
}

// parkingSpotSortFields - поля, по которым разрешена сортировка списка
var parkingSpotSortFields = map[string]struct{}{
	"id":                {},
	"parkingSpotNumber": {},
	"licensePlateCar":   {},
	"brandCar":          {},
	"modelCar":          {},
	"colorCar":          {},
	"responsibleName":   {},
	"apartment":         {},
	"block":             {},
	"registrationDate":  {},
}

// IsParkingSpotSortField проверяет, можно ли сортировать по полю
func IsParkingSpotSortField(field string) bool {
	_, ok := parkingSpotSortFields[field]
	return ok
}
