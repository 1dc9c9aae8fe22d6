package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the payload of every failed API call.
type ErrorBody struct {
	Error string `json:"error"`
}

type SuccessBody struct {
	Success bool `json:"success"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorBody{Error: message})
}

func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, SuccessBody{Success: true})
}
