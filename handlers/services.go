package handlers

import (
	"net/http"

	"servicefinder/middleware"
	"servicefinder/models"
	"servicefinder/services/catalogue"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogueHandler serves service listings.
type CatalogueHandler struct {
	CatalogueSvc catalogue.CatalogueService
	Logger       *zap.Logger
}

func NewCatalogueHandler(svc catalogue.CatalogueService, logger *zap.Logger) *CatalogueHandler {
	return &CatalogueHandler{CatalogueSvc: svc, Logger: logger}
}

// AddService handles POST /api/services.
func (h *CatalogueHandler) AddService(c *gin.Context) {
	var in models.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	svc, err := h.CatalogueSvc.AddService(c.Request.Context(), middleware.Identity(c).ID, in)
	if err != nil {
		respondError(c, h.Logger, "AddService", err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// EditService handles PUT /api/services/:id.
func (h *CatalogueHandler) EditService(c *gin.Context) {
	var in models.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	svc, err := h.CatalogueSvc.EditService(c.Request.Context(), middleware.Identity(c).ID, c.Param("id"), in)
	if err != nil {
		respondError(c, h.Logger, "EditService", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService handles DELETE /api/services/:id.
func (h *CatalogueHandler) DeleteService(c *gin.Context) {
	if err := h.CatalogueSvc.DeleteService(c.Request.Context(), middleware.Identity(c).ID, c.Param("id")); err != nil {
		respondError(c, h.Logger, "DeleteService", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// GetService handles GET /api/services/:id.
func (h *CatalogueHandler) GetService(c *gin.Context) {
	svc, err := h.CatalogueSvc.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetService", err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ListMyServices handles GET /api/me/services.
func (h *CatalogueHandler) ListMyServices(c *gin.Context) {
	services, err := h.CatalogueSvc.ListMyServices(c.Request.Context(), middleware.Identity(c).ID)
	if err != nil {
		respondError(c, h.Logger, "ListMyServices", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListProviderServices handles GET /api/providers/:id/services.
func (h *CatalogueHandler) ListProviderServices(c *gin.Context) {
	services, err := h.CatalogueSvc.ListProviderServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "ListProviderServices", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
