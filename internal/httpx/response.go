package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope for every error payload. Error carries the
// machine-distinguishable kind, Message the human-readable description.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// Error writes an ErrorResponse with the given status, kind and message.
func Error(w http.ResponseWriter, status int, kind, message string, details any) {
	JSON(w, status, ErrorResponse{Error: kind, Message: message, Details: details})
}
