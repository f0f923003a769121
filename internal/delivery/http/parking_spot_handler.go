package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontandrew/parkingcontrol/internal/domain"
	"github.com/frontandrew/parkingcontrol/internal/pkg/logger"
	"github.com/frontandrew/parkingcontrol/internal/pkg/validator"
	"github.com/frontandrew/parkingcontrol/internal/usecase/parkingspot"
	"github.com/google/uuid"
)

// ParkingSpotService определяет интерфейс для сервиса парковочных мест
type ParkingSpotService interface {
	CreateParkingSpot(ctx context.Context, req *parkingspot.CreateParkingSpotRequest) (*domain.ParkingSpot, error)
	GetParkingSpotByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSpot, error)
	ListParkingSpots(ctx context.Context, req domain.PageRequest) (*domain.Page[*domain.ParkingSpot], error)
	DeleteParkingSpot(ctx context.Context, id uuid.UUID) error
}

// ParkingSpotHandler обрабатывает запросы к /parking-spot.
// Бизнес-правил здесь нет: только разбор запроса и перевод ошибок в статусы.
type ParkingSpotHandler struct {
	service   ParkingSpotService
	validator *validator.Validator
	logger    logger.Logger
}

// NewParkingSpotHandler создает новый handler
func NewParkingSpotHandler(service ParkingSpotService, v *validator.Validator, logger logger.Logger) *ParkingSpotHandler {
	return &ParkingSpotHandler{
		service:   service,
		validator: v,
		logger:    logger,
	}
}

// CreateParkingSpot регистрирует парковочное место
// POST /parking-spot
func (h *ParkingSpotHandler) CreateParkingSpot(w http.ResponseWriter, r *http.Request) {
	var req parkingspot.CreateParkingSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Normalize()

	if err := h.validator.Struct(req); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Invalid request body",
				"fields": verr.Fields,
			})
			return
		}
		h.handleError(w, err, "Failed to validate parking spot")
		return
	}

	spot, err := h.service.CreateParkingSpot(r.Context(), &req)
	if err != nil {
		h.handleError(w, err, "Failed to create parking spot")
		return
	}

	respondJSON(w, http.StatusCreated, spot)
}

// ListParkingSpots возвращает страницу парковочных мест
// GET /parking-spot?page=0&size=10&sort=id,asc
func (h *ParkingSpotHandler) ListParkingSpots(w http.ResponseWriter, r *http.Request) {
	pageReq, err := parsePageRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.service.ListParkingSpots(r.Context(), pageReq)
	if err != nil {
		h.handleError(w, err, "Failed to list parking spots")
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// GetParkingSpotByID возвращает парковочное место по ID
// GET /parking-spot/{id}
func (h *ParkingSpotHandler) GetParkingSpotByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	spot, err := h.service.GetParkingSpotByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Failed to get parking spot")
		return
	}

	respondJSON(w, http.StatusOK, spot)
}

// DeleteParkingSpot удаляет парковочное место
// DELETE /parking-spot/{id}
func (h *ParkingSpotHandler) DeleteParkingSpot(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteParkingSpot(r.Context(), id); err != nil {
		h.handleError(w, err, "Failed to delete parking spot")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ParkingSpotHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(getPathParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid parking spot ID")
		return uuid.Nil, false
	}
	return id, true
}

// handleError переводит ошибку сервиса в HTTP статус.
// Подробности внутренних ошибок только логируются.
func (h *ParkingSpotHandler) handleError(w http.ResponseWriter, err error, logMsg string) {
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, conflict.Message)
	case errors.Is(err, domain.ErrParkingSpotNotFound):
		respondError(w, http.StatusNotFound, domain.ErrParkingSpotNotFound.Error())
	default:
		h.logger.Error(logMsg, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
