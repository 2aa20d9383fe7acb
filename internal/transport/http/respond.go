package http

import (
	"encoding/json"
	"net/http"
)

// Error codes surfaced to clients. CONFLICT is deliberately distinct from
// VALIDATION: it is the expected failure mode of this domain and recoverable
// by retrying with a different time.
const (
	codeValidation         = "VALIDATION"
	codeServiceNotFound    = "SERVICE_NOT_FOUND"
	codeServiceNotBookable = "SERVICE_NOT_BOOKABLE"
	codeCustomerNotFound   = "CUSTOMER_NOT_FOUND"
	codeNotFound           = "NOT_FOUND"
	codeConflict           = "CONFLICT"
	codeInternal           = "INTERNAL"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
