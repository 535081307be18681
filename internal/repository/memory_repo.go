package repository

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/bid2ship/bid2ship/internal/models"

	"github.com/google/uuid"
)

// MemoryStore - хранилище в памяти, общее для всех memory-репозиториев.
// Повторяет контракты postgres-реализаций, включая уникальность email и
// пары (driver, shipment). Используется в тестах и для локального запуска
// без базы данных. Mutex служит точкой сериализации вместо транзакции.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []models.User
	shipments []models.Shipment
	bids      []models.Bid
}

// NewMemoryStore создает новое пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// MemoryUserRepository - реализация UserRepository в памяти.
type MemoryUserRepository struct {
	store *MemoryStore
}

// NewMemoryUserRepository создает новый экземпляр MemoryUserRepository.
func NewMemoryUserRepository(store *MemoryStore) *MemoryUserRepository {
	return &MemoryUserRepository{store: store}
}

// CreateUser создает нового пользователя. Email должен быть уникальным.
func (r *MemoryUserRepository) CreateUser(ctx context.Context, userReq models.RegisterRequest, passwordHash string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i := range r.store.users {
		if r.store.users[i].Email == userReq.Email {
			return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeDuplicateEmail, "email already registered")
		}
	}
	newUser := models.User{
		ID:           uuid.New().String(),
		Email:        userReq.Email,
		Name:         userReq.Name,
		Phone:        userReq.Phone,
		Role:         userReq.Role,
		CompanyName:  userReq.CompanyName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.store.users = append(r.store.users, newUser)
	return &newUser, nil
}

// GetUserByEmail возвращает пользователя по email.
func (r *MemoryUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.users {
		if r.store.users[i].Email == email {
			user := r.store.users[i]
			return &user, nil
		}
	}
	return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeUserNotFound, "user not found")
}

// GetUserByID возвращает пользователя по идентификатору.
func (r *MemoryUserRepository) GetUserByID(ctx context.Context, userId string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.users {
		if r.store.users[i].ID == userId {
			user := r.store.users[i]
			return &user, nil
		}
	}
	return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeUserNotFound, "user not found")
}

// EmailExists проверяет, зарегистрирован ли уже email.
func (r *MemoryUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.users {
		if r.store.users[i].Email == email {
			return true, nil
		}
	}
	return false, nil
}

// MemoryShipmentRepository - реализация ShipmentRepository в памяти.
type MemoryShipmentRepository struct {
	store *MemoryStore
}

// NewMemoryShipmentRepository создает новый экземпляр MemoryShipmentRepository.
func NewMemoryShipmentRepository(store *MemoryStore) *MemoryShipmentRepository {
	return &MemoryShipmentRepository{store: store}
}

// CreateShipment создает новую перевозку со статусом posted.
func (r *MemoryShipmentRepository) CreateShipment(ctx context.Context, shipperId string, shipmentReq models.ShipmentRequest) (*models.Shipment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	newShipment := models.Shipment{
		ID:              uuid.New().String(),
		ShipperID:       shipperId,
		OriginCity:      shipmentReq.OriginCity,
		DestinationCity: shipmentReq.DestinationCity,
		Description:     shipmentReq.Description,
		Weight:          shipmentReq.Weight,
		Deadline:        shipmentReq.Deadline,
		PriceRange:      shipmentReq.PriceRange,
		Status:          models.PostedShipment,
		CreatedAt:       time.Now().UTC(),
	}
	r.store.shipments = append(r.store.shipments, newShipment)
	return &newShipment, nil
}

// GetShipments возвращает список перевозок, новые первыми.
func (r *MemoryShipmentRepository) GetShipments(ctx context.Context, status models.ShipmentStatus, limit, offset int) ([]models.Shipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var shipments []models.Shipment
	// Обход с конца дает порядок "новые первыми" при равных метках времени.
	for i := len(r.store.shipments) - 1; i >= 0; i-- {
		shipment := r.store.shipments[i]
		if status != "" && shipment.Status != status {
			continue
		}
		shipments = append(shipments, shipment)
	}
	sort.SliceStable(shipments, func(i, j int) bool {
		return shipments[i].CreatedAt.After(shipments[j].CreatedAt)
	})
	return page(shipments, limit, offset), nil
}

// GetShipperShipments возвращает перевозки грузоотправителя, новые первыми.
func (r *MemoryShipmentRepository) GetShipperShipments(ctx context.Context, shipperId string, limit, offset int) ([]models.Shipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var shipments []models.Shipment
	for i := len(r.store.shipments) - 1; i >= 0; i-- {
		if r.store.shipments[i].ShipperID == shipperId {
			shipments = append(shipments, r.store.shipments[i])
		}
	}
	sort.SliceStable(shipments, func(i, j int) bool {
		return shipments[i].CreatedAt.After(shipments[j].CreatedAt)
	})
	return page(shipments, limit, offset), nil
}

// GetShipmentByID возвращает перевозку по идентификатору.
func (r *MemoryShipmentRepository) GetShipmentByID(ctx context.Context, shipmentId string) (*models.Shipment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for i := range r.store.shipments {
		if r.store.shipments[i].ID == shipmentId {
			shipment := r.store.shipments[i]
			return &shipment, nil
		}
	}
	return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeShipmentNotFound, "shipment not found")
}

// MemoryBidRepository - реализация BidRepository в памяти.
type MemoryBidRepository struct {
	store *MemoryStore
}

// NewMemoryBidRepository создает новый экземпляр MemoryBidRepository.
func NewMemoryBidRepository(store *MemoryStore) *MemoryBidRepository {
	return &MemoryBidRepository{store: store}
}

// CreateBid создает новую ставку с теми же предусловиями, что и
// postgres-реализация: перевозка существует, открыта для приема ставок,
// повторная ставка того же водителя отклоняется.
func (r *MemoryBidRepository) CreateBid(ctx context.Context, driverId string, bidReq models.BidRequest) (*models.Bid, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	shipment := r.store.findShipment(bidReq.ShipmentID)
	if shipment == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeShipmentNotFound, "shipment not found")
	}
	if err := models.ValidateBidPlacement(shipment); err != nil {
		return nil, err
	}
	for i := range r.store.bids {
		if r.store.bids[i].DriverID == driverId && r.store.bids[i].ShipmentID == bidReq.ShipmentID {
			return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeDuplicateBid, "you have already placed a bid on this shipment")
		}
	}

	newBid := models.Bid{
		ID:         uuid.New().String(),
		DriverID:   driverId,
		ShipmentID: bidReq.ShipmentID,
		Amount:     bidReq.Amount,
		Message:    bidReq.Message,
		Status:     models.PendingBid,
		CreatedAt:  time.Now().UTC(),
	}
	r.store.bids = append(r.store.bids, newBid)
	return &newBid, nil
}

// GetBidByID возвращает ставку по идентификатору.
func (r *MemoryBidRepository) GetBidByID(ctx context.Context, bidId string) (*models.Bid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	bid := r.store.findBid(bidId)
	if bid == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeBidNotFound, "bid not found")
	}
	copied := *bid
	return &copied, nil
}

// GetShipmentBids возвращает ставки по перевозке, от меньшей суммы к большей.
func (r *MemoryBidRepository) GetShipmentBids(ctx context.Context, shipmentId string) ([]models.Bid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bids []models.Bid
	for i := range r.store.bids {
		if r.store.bids[i].ShipmentID == shipmentId {
			bids = append(bids, r.store.bids[i])
		}
	}
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Amount < bids[j].Amount
	})
	return bids, nil
}

// GetDriverBids возвращает ставки водителя, новые первыми.
func (r *MemoryBidRepository) GetDriverBids(ctx context.Context, driverId string, limit, offset int) ([]models.Bid, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var bids []models.Bid
	for i := len(r.store.bids) - 1; i >= 0; i-- {
		if r.store.bids[i].DriverID == driverId {
			bids = append(bids, r.store.bids[i])
		}
	}
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].CreatedAt.After(bids[j].CreatedAt)
	})
	return page(bids, limit, offset), nil
}

// AcceptBid принимает ставку под общим mutex: решение и все изменения
// статусов применяются как единое целое, как транзакция в postgres-реализации.
func (r *MemoryBidRepository) AcceptBid(ctx context.Context, shipperId, bidId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	bid := r.store.findBid(bidId)
	if bid == nil {
		return models.NewErrorResponse(http.StatusNotFound, models.CodeBidNotFound, "bid not found")
	}
	shipment := r.store.findShipment(bid.ShipmentID)
	if shipment == nil {
		return models.NewErrorResponse(http.StatusNotFound, models.CodeShipmentNotFound, "shipment not found")
	}
	if err := models.ValidateBidAcceptance(bid, shipment, shipperId); err != nil {
		return err
	}

	shipment.Status = models.BiddingClosed
	bid.Status = models.AcceptedBid
	for i := range r.store.bids {
		if r.store.bids[i].ShipmentID == bid.ShipmentID && r.store.bids[i].ID != bid.ID {
			r.store.bids[i].Status = models.RejectedBid
		}
	}
	return nil
}

// findShipment возвращает указатель на запись внутри хранилища.
// Вызывается только под mutex.
func (s *MemoryStore) findShipment(shipmentId string) *models.Shipment {
	for i := range s.shipments {
		if s.shipments[i].ID == shipmentId {
			return &s.shipments[i]
		}
	}
	return nil
}

// findBid возвращает указатель на запись внутри хранилища.
// Вызывается только под mutex.
func (s *MemoryStore) findBid(bidId string) *models.Bid {
	for i := range s.bids {
		if s.bids[i].ID == bidId {
			return &s.bids[i]
		}
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
