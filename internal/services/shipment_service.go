package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bid2ship/bid2ship/internal/auth"
	"github.com/bid2ship/bid2ship/internal/models"
	"github.com/bid2ship/bid2ship/internal/repository"
)

type ShipmentService struct {
	Repo repository.ShipmentRepository
	Bids repository.BidRepository
}

// NewShipmentService создает новый экземпляр ShipmentService.
func NewShipmentService(repo repository.ShipmentRepository, bids repository.BidRepository) *ShipmentService {
	return &ShipmentService{Repo: repo, Bids: bids}
}

// CreateShipment создает новую перевозку. Доступно только грузоотправителям.
func (s *ShipmentService) CreateShipment(ctx context.Context, user *models.User, shipmentReq models.ShipmentRequest) (*models.Shipment, error) {
	if err := auth.RequireRole(user, models.ShipperRole); err != nil {
		return nil, err
	}

	if shipmentReq.OriginCity == "" || shipmentReq.DestinationCity == "" || shipmentReq.Description == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, "missing required fields")
	}
	if shipmentReq.Weight <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, "weight must be a positive number of tons")
	}
	if shipmentReq.Deadline.IsZero() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, "deadline is required")
	}
	return s.Repo.CreateShipment(ctx, user.ID, shipmentReq)
}

// FetchShipments возвращает список перевозок с необязательным фильтром по статусу.
func (s *ShipmentService) FetchShipments(ctx context.Context, status string, limit, offset int) ([]models.Shipment, error) {
	shipmentStatus := models.ShipmentStatus(status)
	if status != "" && !models.KnownShipmentStatus(shipmentStatus) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, fmt.Sprintf("unsupported shipment status: %s", status))
	}
	return s.Repo.GetShipments(ctx, shipmentStatus, limit, offset)
}

// GetMyShipments возвращает перевозки грузоотправителя вместе с их ставками.
func (s *ShipmentService) GetMyShipments(ctx context.Context, user *models.User, limit, offset int) ([]models.ShipmentWithBids, error) {
	if err := auth.RequireRole(user, models.ShipperRole); err != nil {
		return nil, err
	}

	shipments, err := s.Repo.GetShipperShipments(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]models.ShipmentWithBids, 0, len(shipments))
	for _, shipment := range shipments {
		bids, err := s.Bids.GetShipmentBids(ctx, shipment.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.ShipmentWithBids{
			Shipment: shipment,
			Bids:     bids,
			BidCount: len(bids),
		})
	}
	return result, nil
}

// GetShipment возвращает перевозку по идентификатору вместе с ее ставками.
func (s *ShipmentService) GetShipment(ctx context.Context, shipmentId string) (*models.ShipmentWithBids, error) {
	shipment, err := s.Repo.GetShipmentByID(ctx, shipmentId)
	if err != nil {
		return nil, err
	}

	bids, err := s.Bids.GetShipmentBids(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}
	return &models.ShipmentWithBids{
		Shipment: *shipment,
		Bids:     bids,
		BidCount: len(bids),
	}, nil
}
