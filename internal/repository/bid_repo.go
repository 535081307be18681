package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bid2ship/bid2ship/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository - интерфейс для работы со ставками.
type BidRepository interface {
	CreateBid(ctx context.Context, driverId string, bidReq models.BidRequest) (*models.Bid, error)
	GetBidByID(ctx context.Context, bidId string) (*models.Bid, error)
	GetShipmentBids(ctx context.Context, shipmentId string) ([]models.Bid, error)
	GetDriverBids(ctx context.Context, driverId string, limit, offset int) ([]models.Bid, error)
	AcceptBid(ctx context.Context, shipperId, bidId string) error
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

// CreateBid создает новую ставку. Перевозка должна существовать и быть
// открытой для приема ставок. Уникальное ограничение (driver_id, shipment_id)
// не дает водителю сделать вторую ставку на ту же перевозку даже при
// одновременных запросах.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, driverId string, bidReq models.BidRequest) (*models.Bid, error) {
	var shipment models.Shipment
	shipmentQuery := `SELECT id, shipper_id, status FROM shipments WHERE id = $1`
	err := r.DB.QueryRow(ctx, shipmentQuery, bidReq.ShipmentID).Scan(
		&shipment.ID,
		&shipment.ShipperID,
		&shipment.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeShipmentNotFound, "shipment not found")
		}
		return nil, err
	}
	if err := models.ValidateBidPlacement(&shipment); err != nil {
		return nil, err
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
	insertQuery := `INSERT INTO bids (id, driver_id, shipment_id, amount, message, status, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.DriverID,
		newBid.ShipmentID,
		newBid.Amount,
		newBid.Message,
		newBid.Status,
		newBid.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeDuplicateBid, "you have already placed a bid on this shipment")
		}
		return nil, err
	}
	return &newBid, nil
}

// GetBidByID возвращает ставку по идентификатору.
func (r *PostgresBidRepository) GetBidByID(ctx context.Context, bidId string) (*models.Bid, error) {
	var bid models.Bid
	query := `SELECT id, driver_id, shipment_id, amount, message, status, created_at
	          FROM bids WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, bidId).Scan(
		&bid.ID,
		&bid.DriverID,
		&bid.ShipmentID,
		&bid.Amount,
		&bid.Message,
		&bid.Status,
		&bid.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeBidNotFound, "bid not found")
		}
		return nil, err
	}
	return &bid, nil
}

// GetShipmentBids возвращает ставки по перевозке, от меньшей суммы к большей:
// в обратном аукционе выигрывает самая низкая цена.
func (r *PostgresBidRepository) GetShipmentBids(ctx context.Context, shipmentId string) ([]models.Bid, error) {
	query := `
		SELECT id, driver_id, shipment_id, amount, message, status, created_at
		FROM bids
		WHERE shipment_id = $1
		ORDER BY amount`
	rows, err := r.DB.Query(ctx, query, shipmentId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBids(rows)
}

// GetDriverBids возвращает ставки водителя, новые первыми.
func (r *PostgresBidRepository) GetDriverBids(ctx context.Context, driverId string, limit, offset int) ([]models.Bid, error) {
	query := `
		SELECT id, driver_id, shipment_id, amount, message, status, created_at
		FROM bids
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, driverId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBids(rows)
}

// AcceptBid принимает ставку в одной транзакции: целевая ставка становится
// accepted, остальные ставки по перевозке - rejected, перевозка переходит
// в bidding_closed. Первой блокируется строка перевозки: все решения по
// одной перевозке сериализуются на ней и не пересекаются на строках ставок,
// поэтому два одновременных решения не могут взаимно заблокироваться.
// Условное обновление статуса перевозки служит единственной точкой фиксации.
func (r *PostgresBidRepository) AcceptBid(ctx context.Context, shipperId, bidId string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var shipmentId string
	lookupQuery := `SELECT shipment_id FROM bids WHERE id = $1`
	err = tx.QueryRow(ctx, lookupQuery, bidId).Scan(&shipmentId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NewErrorResponse(http.StatusNotFound, models.CodeBidNotFound, "bid not found")
		}
		return err
	}

	var shipment models.Shipment
	shipmentQuery := `SELECT id, shipper_id, status FROM shipments WHERE id = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, shipmentQuery, shipmentId).Scan(
		&shipment.ID,
		&shipment.ShipperID,
		&shipment.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NewErrorResponse(http.StatusNotFound, models.CodeShipmentNotFound, "shipment not found")
		}
		return err
	}

	// Статус ставки перечитывается под блокировкой перевозки: проигравшее
	// из двух одновременных решений увидит ставку уже разрешенной.
	var bid models.Bid
	bidQuery := `SELECT id, driver_id, shipment_id, amount, message, status, created_at
	             FROM bids WHERE id = $1 FOR UPDATE`
	err = tx.QueryRow(ctx, bidQuery, bidId).Scan(
		&bid.ID,
		&bid.DriverID,
		&bid.ShipmentID,
		&bid.Amount,
		&bid.Message,
		&bid.Status,
		&bid.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.NewErrorResponse(http.StatusNotFound, models.CodeBidNotFound, "bid not found")
		}
		return err
	}

	if err = models.ValidateBidAcceptance(&bid, &shipment, shipperId); err != nil {
		return err
	}

	closeQuery := `UPDATE shipments SET status = $1 WHERE id = $2 AND status = $3`
	closed, err := tx.Exec(ctx, closeQuery, models.BiddingClosed, shipment.ID, models.PostedShipment)
	if err != nil {
		return err
	}
	if closed.RowsAffected() == 0 {
		return models.NewErrorResponse(http.StatusBadRequest, models.CodeShipmentNotOpen, "shipment is not open for bidding")
	}

	acceptQuery := `UPDATE bids SET status = $1 WHERE id = $2`
	if _, err = tx.Exec(ctx, acceptQuery, models.AcceptedBid, bid.ID); err != nil {
		return err
	}

	rejectQuery := `UPDATE bids SET status = $1 WHERE shipment_id = $2 AND id <> $3`
	if _, err = tx.Exec(ctx, rejectQuery, models.RejectedBid, bid.ShipmentID, bid.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanBids(rows pgx.Rows) ([]models.Bid, error) {
	var bids []models.Bid
	for rows.Next() {
		var bid models.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.DriverID,
			&bid.ShipmentID,
			&bid.Amount,
			&bid.Message,
			&bid.Status,
			&bid.CreatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}
