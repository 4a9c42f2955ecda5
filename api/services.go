package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KiraMuss/AndersonStudio/internal/catalog"
	"github.com/KiraMuss/AndersonStudio/internal/domain"
)

type ServiceHandler struct {
	catalog catalog.Catalog
}

type serviceCatalogResponse struct {
	Groups []domain.ServiceGroup `json:"groups"`
}

func NewServiceHandler(c catalog.Catalog) *ServiceHandler {
	return &ServiceHandler{catalog: c}
}

func (h *ServiceHandler) Register(router *gin.RouterGroup) {
	router.GET("/services", h.list)
}

func (h *ServiceHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, serviceCatalogResponse{Groups: h.catalog.Groups})
}
