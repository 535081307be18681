package models

import "time"

type ShipmentStatus string // Статус перевозки

const (
	PostedShipment    ShipmentStatus = "posted"         // Перевозка размещена, ставки открыты
	BiddingClosed     ShipmentStatus = "bidding_closed" // Ставка принята, прием ставок закрыт
	InTransitShipment ShipmentStatus = "in_transit"     // Перевозка в пути
	DeliveredShipment ShipmentStatus = "delivered"      // Перевозка доставлена
)

// shipmentStatusTransitions - закрытая таблица переходов статусов перевозки.
// Переходы in_transit и delivered зарезервированы, эндпоинтов для них нет.
var shipmentStatusTransitions = map[ShipmentStatus][]ShipmentStatus{
	PostedShipment:    {BiddingClosed},
	BiddingClosed:     {InTransitShipment},
	InTransitShipment: {DeliveredShipment},
	DeliveredShipment: {},
}

// KnownShipmentStatus проверяет, что статус входит в закрытый список статусов.
func KnownShipmentStatus(status ShipmentStatus) bool {
	_, ok := shipmentStatusTransitions[status]
	return ok
}

// CanTransitShipment проверяет допустимость перехода между статусами перевозки.
func CanTransitShipment(from, to ShipmentStatus) bool {
	for _, next := range shipmentStatusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Shipment представляет модель перевозки.
type Shipment struct {
	ID              string         `json:"id"`
	ShipperID       string         `json:"shipper_id"`
	OriginCity      string         `json:"origin_city"`
	DestinationCity string         `json:"destination_city"`
	Description     string         `json:"description"`
	Weight          float64        `json:"weight"`
	Deadline        time.Time      `json:"deadline"`
	PriceRange      string         `json:"price_range,omitempty"`
	Status          ShipmentStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ShipmentRequest представляет структуру запроса для создания перевозки.
type ShipmentRequest struct {
	OriginCity      string    `json:"origin_city"`
	DestinationCity string    `json:"destination_city"`
	Description     string    `json:"description"`
	Weight          float64   `json:"weight"`
	Deadline        time.Time `json:"deadline"`
	PriceRange      string    `json:"price_range,omitempty"`
}

// ShipmentWithBids представляет перевозку вместе с ее ставками.
type ShipmentWithBids struct {
	Shipment Shipment `json:"shipment"`
	Bids     []Bid    `json:"bids"`
	BidCount int      `json:"bid_count"`
}
