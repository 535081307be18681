package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bid2ship/bid2ship/internal/models"
	"github.com/bid2ship/bid2ship/internal/repository"
)

// Authenticator проверяет учетные данные пользователя по каждому запросу.
// Сессий и токенов нет: email и пароль передаются в каждом запросе.
type Authenticator struct {
	users repository.UserRepository
}

// NewAuthenticator создает новый экземпляр Authenticator.
func NewAuthenticator(users repository.UserRepository) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate проверяет пару email/пароль и возвращает пользователя.
// Неизвестный email и неверный пароль дают одну и ту же ошибку 401,
// чтобы не раскрывать существование учетной записи.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok && errorResponse.StatusCode == http.StatusNotFound {
			return nil, models.NewErrorResponse(http.StatusUnauthorized, models.CodeInvalidCredentials, "invalid credentials")
		}
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, models.CodeInvalidCredentials, "invalid credentials")
	}
	return user, nil
}

// RequireRole проверяет, что у пользователя требуемая роль. Чистая проверка
// без побочных эффектов, вызывается перед каждой мутирующей операцией.
func RequireRole(user *models.User, role models.UserRole) error {
	if user.Role != role {
		return models.NewErrorResponse(http.StatusForbidden, models.CodeForbidden, fmt.Sprintf("this action requires the '%s' role", role))
	}
	return nil
}
