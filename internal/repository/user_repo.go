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

// uniqueViolation - код ошибки postgres для нарушения уникального ограничения.
const uniqueViolation = "23505"

// UserRepository - интерфейс для работы с пользователями.
type UserRepository interface {
	CreateUser(ctx context.Context, userReq models.RegisterRequest, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userId string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresUserRepository создает новый экземпляр PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser создает нового пользователя с уже вычисленным хешем пароля.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, userReq models.RegisterRequest, passwordHash string) (*models.User, error) {
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
	insertQuery := `INSERT INTO users (id, email, name, phone, role, company_name, password_hash, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newUser.ID,
		newUser.Email,
		newUser.Name,
		newUser.Phone,
		newUser.Role,
		newUser.CompanyName,
		newUser.PasswordHash,
		newUser.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeDuplicateEmail, "email already registered")
		}
		return nil, err
	}
	return &newUser, nil
}

// GetUserByEmail возвращает пользователя по email.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, name, phone, role, company_name, password_hash, created_at
	          FROM users WHERE email = $1`
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.Role,
		&user.CompanyName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeUserNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID возвращает пользователя по идентификатору.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, userId string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, name, phone, role, company_name, password_hash, created_at
	          FROM users WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, userId).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.Role,
		&user.CompanyName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, models.CodeUserNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// EmailExists проверяет, зарегистрирован ли уже email.
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := r.DB.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
