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

// UserHandler - структура для обработки HTTP-запросов.
type UserHandler struct {
	Service *services.UserService
	Auth    *auth.Authenticator
	Logger  logger.ILogger
	Timeout time.Duration
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(service *services.UserService, authenticator *auth.Authenticator, log logger.ILogger, timeout time.Duration) *UserHandler {
	return &UserHandler{
		Service: service,
		Auth:    authenticator,
		Logger:  log,
		Timeout: timeout,
	}
}

// currentUser аутентифицирует запрос по basic auth: email как имя
// пользователя, пароль как пароль. Проверка выполняется на каждом запросе,
// состояние сессии не хранится.
func currentUser(ctx context.Context, r *http.Request, authenticator *auth.Authenticator) (*models.User, error) {
	email, password, ok := r.BasicAuth()
	if !ok {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, models.CodeInvalidCredentials, "basic auth credentials required")
	}
	return authenticator.Authenticate(ctx, email, password)
}

// Register обрабатывает запросы для регистрации пользователя.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var userReq models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&userReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.CodeValidation, "invalid request body")
		return
	}

	user, err := h.Service.Register(ctx, userReq)
	if err != nil {
		writeError(w, h.Logger, err, "failed to register user")
		return
	}

	h.Logger.Info("user registered", logger.String("userId", user.ID), logger.String("role", string(user.Role)))

	writeJSON(w, h.Logger, user)
}

// Login обрабатывает запросы для входа пользователя.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var loginReq models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, models.CodeValidation, "invalid request body")
		return
	}

	user, err := h.Service.Login(ctx, loginReq)
	if err != nil {
		writeError(w, h.Logger, err, "failed to login user")
		return
	}

	writeJSON(w, h.Logger, models.LoginResponse{
		Message: "Login successful",
		User:    user,
	})
}

// Me обрабатывает запросы для получения профиля текущего пользователя.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, err := currentUser(ctx, r, h.Auth)
	if err != nil {
		writeError(w, h.Logger, err, "failed to authenticate user")
		return
	}

	writeJSON(w, h.Logger, user)
}
