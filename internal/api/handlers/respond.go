package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Стабильные машинные коды ошибок для программной обработки вызывающими
// (email-нотификатор, рендер счетов, UI). Текст сообщения может меняться,
// код - нет.
const (
	CodeValidationError = "validation_error"
	CodeUnauthorized    = "unauthorized"
	CodeConflict        = "conflict"
	CodeNotFound        = "not_found"
	CodeInternalError   = "internal_error"
)

const msgInternalError = "внутренняя ошибка сервиса, попробуйте позже"

// ErrorBody тело ответа с ошибкой
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse обертка ответа с ошибкой
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// DecodeJSON декодирует JSON тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ответ с ошибкой: HTTP статус + стабильный код + сообщение
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondBadRequest 400 с кодом validation_error
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidationError, message)
}

// RespondConflict 409 с кодом conflict
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeConflict, message)
}

// RespondUnauthorized 401 с кодом unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondNotFound 404 с кодом not_found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondInternalError 500 с generic сообщением - детали только в логах,
// внутренние тексты ошибок наружу не утекают
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, msgInternalError)
}
