package models

// Машиночитаемые коды ошибок, возвращаемые вместе с текстом причины.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeShipmentNotFound   = "SHIPMENT_NOT_FOUND"
	CodeBidNotFound        = "BID_NOT_FOUND"
	CodeShipmentNotOpen    = "SHIPMENT_NOT_OPEN"
	CodeDuplicateBid       = "DUPLICATE_BID"
	CodeBidAlreadyResolved = "BID_ALREADY_RESOLVED"
	CodeNotOwner           = "NOT_OWNER"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, code, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Code:       code,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
