// Package response writes the uniform result envelope consumed by every
// pocketdo front end.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/pocketdo/pocketdo/internal/domain"
)

// Envelope is the uniform result shape: success with a payload, or failure
// with an error body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody contains error details.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// OK sends a 200 success envelope with the payload.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created sends a 201 success envelope with the payload.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// Error sends a failure envelope with the status mapped from the domain
// error code.
func Error(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	JSON(w, statusForCode(code), Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:    string(code),
			Message: err.Error(),
		},
	})
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodePersistence, domain.ErrCodeStorageInit:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
