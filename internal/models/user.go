package models

import "time"

type UserRole string // Роль пользователя

const (
	ShipperRole UserRole = "shipper" // Грузоотправитель, размещает перевозки
	DriverRole  UserRole = "driver"  // Водитель, делает ставки на перевозки
)

// KnownUserRole проверяет, что роль входит в закрытый список ролей.
func KnownUserRole(role UserRole) bool {
	switch role {
	case ShipperRole, DriverRole:
		return true
	}
	return false
}

// User представляет модель пользователя. Хеш пароля наружу не отдается.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Role         UserRole  `json:"role"`
	CompanyName  string    `json:"company_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest представляет структуру запроса для регистрации пользователя.
type RegisterRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Role        UserRole `json:"role"`
	CompanyName string   `json:"company_name,omitempty"`
}

// LoginRequest представляет структуру запроса для входа.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse представляет ответ на успешный вход.
type LoginResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}
