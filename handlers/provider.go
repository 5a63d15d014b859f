package handlers

import (
	"context"
	"net/http"

	"servicefinder/middleware"
	"servicefinder/models"
	"servicefinder/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxPhotoSize bounds profile photo uploads.
const maxPhotoSize = 5 << 20

// TokenStore updates a user's push token.
type TokenStore interface {
	UpdateFCMToken(ctx context.Context, id, token string) error
}

// ProviderHandler serves provider listing and profile endpoints.
type ProviderHandler struct {
	ProviderSvc provider.ProviderService
	Users       TokenStore
	Logger      *zap.Logger
}

func NewProviderHandler(svc provider.ProviderService, users TokenStore, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{ProviderSvc: svc, Users: users, Logger: logger}
}

// SearchProviders handles GET /api/providers?query=&location=.
func (h *ProviderHandler) SearchProviders(c *gin.Context) {
	var q models.ProviderSearch
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	providers, err := h.ProviderSvc.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.Logger, "SearchProviders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// GetProvider handles GET /api/providers/:id.
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	p, err := h.ProviderSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetProvider", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetMyProfile handles GET /api/me/provider.
func (h *ProviderHandler) GetMyProfile(c *gin.Context) {
	p, err := h.ProviderSvc.GetProfile(c.Request.Context(), middleware.Identity(c).ID)
	if err != nil {
		respondError(c, h.Logger, "GetMyProfile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpsertMyProfile handles PUT /api/me/provider.
func (h *ProviderHandler) UpsertMyProfile(c *gin.Context) {
	var in models.ProviderProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.ProviderSvc.UpsertProfile(c.Request.Context(), middleware.Identity(c).ID, in)
	if err != nil {
		respondError(c, h.Logger, "UpsertMyProfile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UploadPhoto handles POST /api/me/provider/photo with a multipart "photo" field.
func (h *ProviderHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("photo")
	if err != nil {
		badRequest(c, err)
		return
	}
	if fh.Size > maxPhotoSize {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"message": "photo too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	p, err := h.ProviderSvc.UploadPhoto(c.Request.Context(), middleware.Identity(c).ID, f)
	if err != nil {
		respondError(c, h.Logger, "UploadPhoto", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateFCMToken handles PUT /api/me/fcm-token for users and providers.
func (h *ProviderHandler) UpdateFCMToken(c *gin.Context) {
	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}

	id := middleware.Identity(c)
	var err error
	if id.Role == models.RoleProvider {
		err = h.ProviderSvc.UpdateFCMToken(c.Request.Context(), id.ID, body.Token)
	} else {
		err = h.Users.UpdateFCMToken(c.Request.Context(), id.ID, body.Token)
	}
	if err != nil {
		respondError(c, h.Logger, "UpdateFCMToken", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token updated"})
}
