package models

import (
	"net/http"
	"time"
)

type BidStatus string // Статус ставки

const (
	PendingBid  BidStatus = "pending"  // Ставка ожидает решения
	AcceptedBid BidStatus = "accepted" // Ставка принята грузоотправителем
	RejectedBid BidStatus = "rejected" // Ставка отклонена
)

// KnownBidStatus проверяет, что статус входит в закрытый список статусов.
func KnownBidStatus(status BidStatus) bool {
	switch status {
	case PendingBid, AcceptedBid, RejectedBid:
		return true
	}
	return false
}

// Bid представляет модель ставки. Водитель может иметь не более одной
// ставки на перевозку.
type Bid struct {
	ID         string    `json:"id"`
	DriverID   string    `json:"driver_id"`
	ShipmentID string    `json:"shipment_id"`
	Amount     float64   `json:"amount"`
	Message    string    `json:"message,omitempty"`
	Status     BidStatus `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// BidRequest представляет структуру запроса для создания ставки.
type BidRequest struct {
	ShipmentID string  `json:"shipment_id"`
	Amount     float64 `json:"amount"`
	Message    string  `json:"message,omitempty"`
}

// ValidateBidPlacement проверяет, что перевозка открыта для приема ставок.
func ValidateBidPlacement(shipment *Shipment) error {
	if shipment.Status != PostedShipment {
		return NewErrorResponse(http.StatusBadRequest, CodeShipmentNotOpen, "shipment is not open for bidding")
	}
	return nil
}

// ValidateBidAcceptance проверяет решение о принятии ставки: перевозка должна
// принадлежать грузоотправителю, ставка должна ожидать решения, а переход
// статуса перевозки должен быть допустимым. Владение проверяется первым,
// чтобы чужой грузоотправитель не узнал состояние ставки.
func ValidateBidAcceptance(bid *Bid, shipment *Shipment, shipperId string) error {
	if shipment.ShipperID != shipperId {
		return NewErrorResponse(http.StatusForbidden, CodeNotOwner, "you can only accept bids on your own shipments")
	}
	if bid.Status != PendingBid {
		return NewErrorResponse(http.StatusBadRequest, CodeBidAlreadyResolved, "bid has already been resolved")
	}
	if !CanTransitShipment(shipment.Status, BiddingClosed) {
		return NewErrorResponse(http.StatusBadRequest, CodeShipmentNotOpen, "shipment is not open for bidding")
	}
	return nil
}
