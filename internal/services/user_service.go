package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bid2ship/bid2ship/internal/auth"
	"github.com/bid2ship/bid2ship/internal/models"
	"github.com/bid2ship/bid2ship/internal/repository"
	"github.com/bid2ship/bid2ship/internal/utils"
)

type UserService struct {
	Repo repository.UserRepository
	Auth *auth.Authenticator
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo repository.UserRepository, authenticator *auth.Authenticator) *UserService {
	return &UserService{Repo: repo, Auth: authenticator}
}

// Register регистрирует нового пользователя. Email должен быть уникальным,
// роль - из закрытого списка. Пароль хешируется до сохранения.
func (s *UserService) Register(ctx context.Context, userReq models.RegisterRequest) (*models.User, error) {
	if userReq.Email == "" || userReq.Password == "" || userReq.Name == "" || userReq.Phone == "" || userReq.Role == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, "missing required fields")
	}

	if !utils.ValidEmail(userReq.Email) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, "invalid email address")
	}

	if !models.KnownUserRole(userReq.Role) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, fmt.Sprintf("invalid role: %s. Must be 'shipper' or 'driver'", userReq.Role))
	}

	exists, err := s.Repo.EmailExists(ctx, userReq.Email)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.CodeInternal, "internal server error")
	}
	if exists {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeDuplicateEmail, "email already registered")
	}

	passwordHash, err := auth.HashPassword(userReq.Password)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, models.CodeInternal, "internal server error")
	}
	return s.Repo.CreateUser(ctx, userReq, passwordHash)
}

// Login проверяет учетные данные и возвращает пользователя.
func (s *UserService) Login(ctx context.Context, loginReq models.LoginRequest) (*models.User, error) {
	if loginReq.Email == "" || loginReq.Password == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, models.CodeValidation, "email and password are required")
	}
	return s.Auth.Authenticate(ctx, loginReq.Email, loginReq.Password)
}
