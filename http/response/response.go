package response

import (
	"encoding/json"
	"net/http"

	"akademyx-backend/logger"
)

// SendJSON encodes and sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

// Error sends an error response with given status code and error message
func Error(w http.ResponseWriter, statusCode int, errorMsg string) {
	SendJSON(w, statusCode, map[string]string{"error": errorMsg})
}
