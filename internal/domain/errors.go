package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// ParkingSpot errors
var (
	ErrParkingSpotNotFound = errors.New("Parking Spot not found")

	// ErrParkingSpotStorageConflict возвращается хранилищем при нарушении
	// уникального ограничения, которое не поймали проверки сервиса
	ErrParkingSpotStorageConflict = errors.New("parking spot unique constraint violated")
)

// Сообщения о конфликтах уникальности, в порядке проверки
const (
	MsgLicensePlateInUse   = "Conflict: License plate car is already in use"
	MsgParkingSpotInUse    = "Conflict: Parking spot is already in use"
	MsgApartmentBlockInUse = "Conflict: Parking spot already registered in this apartment and block"
)

// ConflictField - поле, уникальность которого нарушена
type ConflictField string

const (
	ConflictLicensePlate   ConflictField = "licensePlateCar"
	ConflictSpotNumber     ConflictField = "parkingSpotNumber"
	ConflictApartmentBlock ConflictField = "apartment,block"
)

// ConflictError - нарушение одного из правил уникальности
type ConflictError struct {
	Field   ConflictField
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrConflict)
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewLicensePlateConflict создает ошибку занятого номера автомобиля
func NewLicensePlateConflict() *ConflictError {
	return &ConflictError{Field: ConflictLicensePlate, Message: MsgLicensePlateInUse}
}

// NewSpotNumberConflict создает ошибку занятого парковочного места
func NewSpotNumberConflict() *ConflictError {
	return &ConflictError{Field: ConflictSpotNumber, Message: MsgParkingSpotInUse}
}

// NewApartmentBlockConflict создает ошибку уже зарегистрированной пары квартира/блок
func NewApartmentBlockConflict() *ConflictError {
	return &ConflictError{Field: ConflictApartmentBlock, Message: MsgApartmentBlockInUse}
}

// ErrConflict - общая ошибка нарушения уникальности
var ErrConflict = errors.New("conflict")
