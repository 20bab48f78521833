package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeErrorResponse(w, statusCode, ErrorResponse{Error: message, Code: codeForStatus(statusCode)})
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusNotFound:
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

var errInvalidPaging = errors.New("paging parameters must be integers")

// GetLimitOrDefault читает limit; пустое значение даёт defaultLimit
func GetLimitOrDefault(r *http.Request, defaultLimit int) (int, error) {
	return getIntOrDefault(r, "limit", defaultLimit)
}

func GetOffsetOrDefault(r *http.Request) (int, error) {
	return getIntOrDefault(r, "offset", 0)
}

func getIntOrDefault(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidPaging
	}
	return value, nil
}
