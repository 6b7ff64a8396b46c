package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"filmdesk/internal/responses"
	"filmdesk/internal/services"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// List handles GET /api/v1/projects/:id/assets
func (h *AssetHandler) List(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	assets, err := h.assetService.List(c.Request.Context(), userID, projectID)
	if err != nil {
		fail(c, err, "Failed to retrieve assets")
		return
	}

	responses.Success(c, http.StatusOK, assets, "Assets retrieved successfully")
}

// Create handles POST /api/v1/projects/:id/assets
func (h *AssetHandler) Create(c *gin.Context) {
	userID, projectID, ok := scope(c, "id", "Project")
	if !ok {
		return
	}

	var req services.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid cost format")
		return
	}

	asset, err := h.assetService.Create(c.Request.Context(), userID, projectID, req)
	if err != nil {
		fail(c, err, "Failed to create asset")
		return
	}

	responses.Success(c, http.StatusCreated, asset, "Asset created successfully")
}

// Update handles PUT /api/v1/assets/:asset_id
func (h *AssetHandler) Update(c *gin.Context) {
	userID, assetID, ok := scope(c, "asset_id", "Asset")
	if !ok {
		return
	}

	var req services.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid cost format")
		return
	}

	asset, err := h.assetService.Update(c.Request.Context(), userID, assetID, req)
	if err != nil {
		fail(c, err, "Failed to update asset")
		return
	}

	responses.Success(c, http.StatusOK, asset, "Asset updated successfully")
}

// Delete handles DELETE /api/v1/assets/:asset_id
func (h *AssetHandler) Delete(c *gin.Context) {
	userID, assetID, ok := scope(c, "asset_id", "Asset")
	if !ok {
		return
	}

	if err := h.assetService.Delete(c.Request.Context(), userID, assetID); err != nil {
		fail(c, err, "Failed to delete asset")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Asset deleted successfully")
}
