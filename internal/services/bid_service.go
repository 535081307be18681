package services

import (
	"context"
	"net/http"

	"github.com/bid2ship/bid2ship/internal/auth"
	"github.com/bid2ship/bid2ship/internal/models"
	"github.com/bid2ship/bid2ship/internal/repository"
)

type BidService struct {
	Repo repository.BidRepository
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(repo repository.BidRepository) *BidService {
	return &BidService{Repo: repo}
}

// CreateBid создает новую ставку. Доступно только водителям.
func (s *BidService) CreateBid(ctx context.Context, user *models.User, bidReq models.BidRequest) (*models.Bid, error) {
	if err := auth.RequireRole(user, models.DriverRole); err != nil {
		return nil, err
	}

	if bidReq.ShipmentID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, "shipment_id is required")
	}
	if bidReq.Amount <= 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, "amount must be a positive number")
	}
	return s.Repo.CreateBid(ctx, user.ID, bidReq)
}

// GetMyBids возвращает ставки водителя, новые первыми.
func (s *BidService) GetMyBids(ctx context.Context, user *models.User, limit, offset int) ([]models.Bid, error) {
	if err := auth.RequireRole(user, models.DriverRole); err != nil {
		return nil, err
	}
	return s.Repo.GetDriverBids(ctx, user.ID, limit, offset)
}

// AcceptBid принимает ставку от имени грузоотправителя. Принять ставку может
// только владелец перевозки, проверка владения выполняется в транзакции.
func (s *BidService) AcceptBid(ctx context.Context, user *models.User, bidId string) error {
	if err := auth.RequireRole(user, models.ShipperRole); err != nil {
		return err
	}
	return s.Repo.AcceptBid(ctx, user.ID, bidId)
}
