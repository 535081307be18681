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

// BidHandler - структура для обработки HTTP-запросов.
type BidHandler struct {
	Service *services.BidService
	Auth    *auth.Authenticator
	Logger  logger.ILogger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, authenticator *auth.Authenticator, log logger.ILogger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Auth:    authenticator,
		Logger:  log,
		Timeout: timeout,
	}
}

// CreateBid обрабатывает запросы для создания ставки.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := currentUser(ctx, r, h.Auth)
	if err != nil {
		writeError(w, h.Logger, err, "failed to authenticate user")
		return
	}

	var bidReq models.BidRequest
	if err = json.NewDecoder(r.Body).Decode(&bidReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.CodeValidation, "invalid request body")
		return
	}

	bid, err := h.Service.CreateBid(ctx, user, bidReq)
	if err != nil {
		writeError(w, h.Logger, err, "failed to create bid")
		return
	}

	h.Logger.Info("bid placed",
		logger.String("bidId", bid.ID),
		logger.String("shipmentId", bid.ShipmentID),
		logger.Float64("amount", bid.Amount))

	writeJSON(w, h.Logger, bid)
}

// GetMyBids обрабатывает запросы для получения ставок водителя.
func (h *BidHandler) GetMyBids(w http.ResponseWriter, r *http.Request) {
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

	bids, err := h.Service.GetMyBids(ctx, user, limit, offset)
	if err != nil {
		writeError(w, h.Logger, err, "failed to fetch bids")
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	writeJSON(w, h.Logger, bids)
}

// AcceptBid обрабатывает запросы для принятия ставки грузоотправителем.
func (h *BidHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := currentUser(ctx, r, h.Auth)
	if err != nil {
		writeError(w, h.Logger, err, "failed to authenticate user")
		return
	}

	bidId := r.PathValue("bidId")

	if err = h.Service.AcceptBid(ctx, user, bidId); err != nil {
		writeError(w, h.Logger, err, "failed to accept bid")
		return
	}

	h.Logger.Info("bid accepted",
		logger.String("bidId", bidId),
		logger.String("shipperId", user.ID))

	writeJSON(w, h.Logger, map[string]string{"message": "Bid accepted successfully"})
}
