// Package handlers общие помощники HTTP-слоя: декодирование запросов
// и единый формат ошибок {"code", "message"}.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Машиночитаемые коды ошибок API
const (
	CodeValidationError     = "validation_error"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidTransition   = "invalid_transition"
	CodeNotFound            = "not_found"
	CodeDuplicateCommission = "duplicate_commission"
	CodeAlreadyPaid         = "already_paid"
	CodeAccessDenied        = "access_denied"
	CodeInternalError       = "internal_error"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrEmptyBody возвращается при пустом теле запроса
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON декодирует тело запроса в v, запрещая неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		// Ошибку маршалинга здесь уже не вернуть клиенту
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ответ с ошибкой в едином формате
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest отвечает 400 с кодом validation_error
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidationError, message)
}

// RespondNotFound отвечает 404 с кодом not_found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondUnauthorized отвечает 401 с кодом access_denied
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeAccessDenied, message)
}

// RespondForbidden отвечает 403 с кодом access_denied
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeAccessDenied, message)
}

// RespondConflict отвечает 409 с указанным кодом
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError отвечает 500 с кодом internal_error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "внутренняя ошибка сервера")
}
