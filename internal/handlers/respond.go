package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bid2ship/bid2ship/internal/logger"
	"github.com/bid2ship/bid2ship/internal/models"
	"github.com/bid2ship/bid2ship/internal/utils"
)

// writeError отправляет ошибку клиенту. Бизнес-ошибки несут свой статус и код,
// все остальное уходит как 500 с запасным сообщением.
func writeError(w http.ResponseWriter, log logger.ILogger, err error, fallback string) {
	if errorResponse, ok := err.(*models.ErrorResponse); ok {
		log.Warning(fallback, logger.Error(err))
		utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Code, errorResponse.Message)
		return
	}
	log.Error(fallback, logger.Error(err))
	utils.SendErrorResponse(w, http.StatusInternalServerError, models.CodeInternal, fallback)
}

// writeJSON отправляет успешный ответ в формате JSON.
func writeJSON(w http.ResponseWriter, log logger.ILogger, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response", logger.Error(err))
	}
}
