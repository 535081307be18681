package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bid2ship/bid2ship/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ShipmentRepository - интерфейс для работы с перевозками.
type ShipmentRepository interface {
	CreateShipment(ctx context.Context, shipperId string, shipmentReq models.ShipmentRequest) (*models.Shipment, error)
	GetShipments(ctx context.Context, status models.ShipmentStatus, limit, offset int) ([]models.Shipment, error)
	GetShipperShipments(ctx context.Context, shipperId string, limit, offset int) ([]models.Shipment, error)
	GetShipmentByID(ctx context.Context, shipmentId string) (*models.Shipment, error)
}

// PostgresShipmentRepository - реализация ShipmentRepository для базы данных.
type PostgresShipmentRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresShipmentRepository создает новый экземпляр PostgresShipmentRepository.
func NewPostgresShipmentRepository(db *pgxpool.Pool) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{DB: db}
}

// CreateShipment создает новую перевозку со статусом posted.
func (r *PostgresShipmentRepository) CreateShipment(ctx context.Context, shipperId string, shipmentReq models.ShipmentRequest) (*models.Shipment, error) {
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
	insertQuery := `INSERT INTO shipments (id, shipper_id, origin_city, destination_city, description, weight, deadline, price_range, status, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newShipment.ID,
		newShipment.ShipperID,
		newShipment.OriginCity,
		newShipment.DestinationCity,
		newShipment.Description,
		newShipment.Weight,
		newShipment.Deadline,
		newShipment.PriceRange,
		newShipment.Status,
		newShipment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &newShipment, nil
}

// GetShipments возвращает список перевозок, новые первыми. Статус - необязательный фильтр.
func (r *PostgresShipmentRepository) GetShipments(ctx context.Context, status models.ShipmentStatus, limit, offset int) ([]models.Shipment, error) {
	var query string
	var args []interface{}
	if status != "" {
		query = `
			SELECT id, shipper_id, origin_city, destination_city, description, weight, deadline, price_range, status, created_at
			FROM shipments
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query = `
			SELECT id, shipper_id, origin_city, destination_city, description, weight, deadline, price_range, status, created_at
			FROM shipments
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShipments(rows)
}

// GetShipperShipments возвращает список перевозок грузоотправителя, новые первыми.
func (r *PostgresShipmentRepository) GetShipperShipments(ctx context.Context, shipperId string, limit, offset int) ([]models.Shipment, error) {
	query := `
		SELECT id, shipper_id, origin_city, destination_city, description, weight, deadline, price_range, status, created_at
		FROM shipments
		WHERE shipper_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.DB.Query(ctx, query, shipperId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShipments(rows)
}

// GetShipmentByID возвращает перевозку по идентификатору.
func (r *PostgresShipmentRepository) GetShipmentByID(ctx context.Context, shipmentId string) (*models.Shipment, error) {
	var shipment models.Shipment
	query := `SELECT id, shipper_id, origin_city, destination_city, description, weight, deadline, price_range, status, created_at
	          FROM shipments WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, shipmentId).Scan(
		&shipment.ID,
		&shipment.ShipperID,
		&shipment.OriginCity,
		&shipment.DestinationCity,
		&shipment.Description,
		&shipment.Weight,
		&shipment.Deadline,
		&shipment.PriceRange,
		&shipment.Status,
		&shipment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeShipmentNotFound, "shipment not found")
		}
		return nil, err
	}
	return &shipment, nil
}

func scanShipments(rows pgx.Rows) ([]models.Shipment, error) {
	var shipments []models.Shipment
	for rows.Next() {
		var shipment models.Shipment
		if err := rows.Scan(
			&shipment.ID,
			&shipment.ShipperID,
			&shipment.OriginCity,
			&shipment.DestinationCity,
			&shipment.Description,
			&shipment.Weight,
			&shipment.Deadline,
			&shipment.PriceRange,
			&shipment.Status,
			&shipment.CreatedAt); err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}
	return shipments, rows.Err()
}
