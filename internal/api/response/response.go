// Package response fixes the JSON envelope every endpoint speaks: a data
// payload with metadata on success, a coded error object on failure.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
)

// Meta rides along with every successful payload.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

// SuccessResponse wraps a payload in the success envelope.
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorDetail carries the stable error code plus a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes data inside the success envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, SuccessResponse{
		Data: data,
		Meta: Meta{Timestamp: time.Now().UTC()},
	})
}

// Error writes err inside the failure envelope. Structured core errors keep
// their code and message; anything else is reported as INTERNAL_ERROR so
// internals never leak to dashboard sessions.
func Error(w http.ResponseWriter, status int, err error) {
	detail := ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail.Code = coreErr.Code
		detail.Message = coreErr.Message
		if coreErr.Cause != nil {
			detail.Cause = coreErr.Cause.Error()
		}
	}

	write(w, status, ErrorResponse{Error: detail})
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
