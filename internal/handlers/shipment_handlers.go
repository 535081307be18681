package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bid2ship/bid2ship/internal/auth"
	"github.com/bid2ship/bid2ship/internal/logger"
	"github.com/bid2ship/bid2ship/internal/models"
	"github.com/bid2ship/bid2ship/internal/services"
	"github.com/bid2ship/bid2ship/internal/utils"
)

// ShipmentHandler - структура для обработки HTTP-запросов.
type ShipmentHandler struct {
	Service *services.ShipmentService
	Auth    *auth.Authenticator
	Logger  logger.ILogger
	Timeout time.Duration
}

// NewShipmentHandler создает новый экземпляр ShipmentHandler.
func NewShipmentHandler(service *services.ShipmentService, authenticator *auth.Authenticator, log logger.ILogger, timeout time.Duration) *ShipmentHandler {
	return &ShipmentHandler{
		Service: service,
		Auth:    authenticator,
		Logger:  log,
		Timeout: timeout,
	}
}

// CreateShipment обрабатывает запросы для создания перевозки.
func (h *ShipmentHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := currentUser(ctx, r, h.Auth)
	if err != nil {
		writeError(w, h.Logger, err, "failed to authenticate user")
		return
	}

	var shipmentReq models.ShipmentRequest
	if err = json.NewDecoder(r.Body).Decode(&shipmentReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.CodeValidation, "invalid request body")
		return
	}

	shipment, err := h.Service.CreateShipment(ctx, user, shipmentReq)
	if err != nil {
		writeError(w, h.Logger, err, "failed to create shipment")
		return
	}

	h.Logger.Info("shipment created",
		logger.String("shipmentId", shipment.ID),
		logger.String("shipperId", shipment.ShipperID))

	writeJSON(w, h.Logger, shipment)
}

// GetShipments обрабатывает запросы для получения списка перевозок.
// Эндпоинт публичный, авторизация не требуется.
func (h *ShipmentHandler) GetShipments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	status := r.URL.Query().Get("status")
	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.CodeValidation, err.Error())
		return
	}

	shipments, err := h.Service.FetchShipments(ctx, status, limit, offset)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch shipments")
		return
	}
	if shipments == nil {
		shipments = []models.Shipment{}
	}

	writeJSON(w, h.Logger, shipments)
}

// GetMyShipments обрабатывает запросы для получения перевозок
// грузоотправителя вместе с их ставками.
func (h *ShipmentHandler) GetMyShipments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := currentUser(ctx, r, h.Auth)
	if err != nil {
		writeError(w, h.Logger, err, "failed to authenticate user")
		return
	}

	limit, offset, err := utils.ParseLimitOffset(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.CodeValidation, err.Error())
		return
	}

	shipments, err := h.Service.GetMyShipments(ctx, user, limit, offset)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch shipments")
		return
	}
	if shipments == nil {
		shipments = []models.ShipmentWithBids{}
	}

	writeJSON(w, h.Logger, shipments)
}

// GetShipment обрабатывает запросы для получения перевозки по идентификатору.
// Эндпоинт публичный, авторизация не требуется.
func (h *ShipmentHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	shipmentId := r.PathValue("shipmentId")

	shipment, err := h.Service.GetShipment(ctx, shipmentId)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch shipment")
		return
	}

	writeJSON(w, h.Logger, shipment)
}
