package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error payload shape for every failing endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_ = json.NewEncoder(w).Encode(ErrorBody{Error: "failed to encode response"})
	}
}

func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	writeJSON(w, statusCode, payload)
}

func Success(w http.ResponseWriter, payload interface{}) {
	writeJSON(w, http.StatusOK, payload)
}

func Created(w http.ResponseWriter, payload interface{}) {
	writeJSON(w, http.StatusCreated, payload)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorBody{Error: message})
}

func NotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, ErrorBody{Error: message})
}

func Conflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, ErrorBody{Error: message})
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, ErrorBody{Error: message})
}
