package http

import (
	"net/http"

	"github.com/TemperedKirin/fullstack-proyecto/internal/domain/catalog"
	"github.com/TemperedKirin/fullstack-proyecto/internal/handler/http/response"
)

type CatalogHandler interface {
	ListDepartments(w http.ResponseWriter, r *http.Request)
	ListTitles(w http.ResponseWriter, r *http.Request)
}

type catalogHandlerImpl struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) CatalogHandler {
	return &catalogHandlerImpl{
		catalogService: catalogService,
	}
}

// ListDepartments implements CatalogHandler
func (h *catalogHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	results, err := h.catalogService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListTitles implements CatalogHandler
func (h *catalogHandlerImpl) ListTitles(w http.ResponseWriter, r *http.Request) {
	results, err := h.catalogService.ListTitles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
