package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/httpresp"
	ucbooking "github.com/BruksfildServices01/barber-bot/internal/usecase/booking"
)

type ServiceHandler struct {
	catalog *ucbooking.Catalog
}

func NewServiceHandler(catalog *ucbooking.Catalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.catalog.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}
