package http

import (
	"net/http"

	"github.com/TemperedKirin/fullstack-proyecto/internal/handler/http/response"
	"github.com/TemperedKirin/fullstack-proyecto/internal/pkg/database"
)

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	db *database.DB
}

func NewHealthHandler(db *database.DB) HealthHandler {
	return &healthHandlerImpl{db: db}
}

// Check implements HealthHandler - reports whether the database is reachable
func (h *healthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		response.JSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}
	response.Success(w, map[string]string{"status": "ok", "db": "up"})
}
