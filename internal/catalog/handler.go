package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/validation"
)

// Handler handles HTTP requests for the location catalog
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new catalog handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateLocation handles POST /locations
func (h *Handler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	loc, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, gin.H{"status": "success", "location": loc})
}

// DeleteLocation handles DELETE /locations/:id
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "location id must be an integer")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"status": "success"})
}

// GetLocation handles GET /locations/:id
func (h *Handler) GetLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "location id must be an integer")
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"location": loc})
}

// ListLocations handles GET /locations
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}
	if locations == nil {
		locations = []*Location{}
	}

	common.SuccessResponse(c, gin.H{"locations": locations})
}

// RandomLocation handles GET /locations/random
func (h *Handler) RandomLocation(c *gin.Context) {
	loc, err := h.service.PickRandom(c.Request.Context())
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"location": loc})
}

// ResetCatalog handles DELETE /locations
func (h *Handler) ResetCatalog(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"status": "success"})
}
