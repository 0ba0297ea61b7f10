package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/database"
)

// Response represents a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WriteCreated writes a 201 Created response.
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message string, code ...string) error {
	errInfo := ErrorInfo{
		Message: message,
	}
	if len(code) > 0 {
		errInfo.Code = code[0]
	}

	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &errInfo,
	})
}

// WriteEngineError maps a calendar engine error to a 400 response carrying
// the error kind as its code and the hint, if any. Errors that are not
// engine errors become a 500.
func WriteEngineError(w http.ResponseWriter, err error) error {
	kind := calendar.KindName(err)
	if kind == "" {
		return WriteInternalError(w, "Internal server error")
	}

	info := ErrorInfo{Message: err.Error(), Code: kind}
	var e *calendar.Error
	if errors.As(err, &e) {
		info.Hint = e.Hint
	}
	return WriteJSON(w, http.StatusBadRequest, Response{Success: false, Error: &info})
}

// WriteStoreError maps bookmark store errors: not found is a 404, a taken
// name is a 409, anything else a 500.
func WriteStoreError(w http.ResponseWriter, err error, name string) error {
	switch {
	case database.IsNotFound(err):
		return WriteNotFound(w, "No bookmark named "+name)
	case errors.Is(err, database.ErrDuplicate):
		return WriteError(w, http.StatusConflict, "A bookmark named "+name+" already exists", "DUPLICATE")
	}
	return WriteInternalError(w, "Bookmark store unavailable")
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, "NOT_FOUND")
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, "BAD_REQUEST")
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, "UNAUTHORIZED")
}
