package favorites

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayodelep/weathercat/internal/catalog"
	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/validation"
)

// AddFavoriteRequest names a catalog location to add or remove
type AddFavoriteRequest struct {
	Name string `json:"name" binding:"required"`
}

// MoveRequest identifies a favorite by ID for reordering
type MoveRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// SwapRequest identifies two favorites to exchange
type SwapRequest struct {
	ID1 int64 `json:"id1" binding:"required"`
	ID2 int64 `json:"id2" binding:"required"`
}

// GoToRequest carries a target cursor position
type GoToRequest struct {
	Position int `json:"position" binding:"required"`
}

// GoToNameRequest carries a target favorite name
type GoToNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// Handler handles HTTP requests for the favorites list
type Handler struct {
	manager *Manager
	catalog catalog.ServiceInterface
}

// NewHandler creates a new favorites handler
func NewHandler(manager *Manager, catalogService catalog.ServiceInterface) *Handler {
	return &Handler{manager: manager, catalog: catalogService}
}

// AddFavorite handles POST /favorites. The name must refer to an active
// catalog location.
func (h *Handler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	loc, err := h.catalog.GetByName(c.Request.Context(), req.Name)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}
	if err := h.manager.Add(*loc); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, gin.H{"status": "success", "location": loc})
}

// RemoveFavorite handles DELETE /favorites
func (h *Handler) RemoveFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	if err := h.manager.RemoveByName(req.Name); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"status": "success"})
}

// ClearFavorites handles POST /favorites/clear
func (h *Handler) ClearFavorites(c *gin.Context) {
	h.manager.Clear()
	common.SuccessResponse(c, gin.H{"status": "success"})
}

// ListFavorites handles GET /favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.manager.All()
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"favorites": favorites})
}

// CurrentFavorite handles GET /favorites/current
func (h *Handler) CurrentFavorite(c *gin.Context) {
	loc, pos, err := h.manager.Current()
	if err != nil {
		h.navError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"location": loc, "position": pos})
}

// PlayFavorite handles POST /favorites/play. It returns the favorite under
// the cursor and advances the cursor, wrapping at the end of the list.
func (h *Handler) PlayFavorite(c *gin.Context) {
	loc, err := h.manager.Advance(c.Request.Context())
	if err != nil {
		h.navError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"location": loc})
}

// MoveToBeginning handles POST /favorites/move-to-beginning
func (h *Handler) MoveToBeginning(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	if err := h.manager.MoveToBeginning(req.ID); err != nil {
		h.navError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"status": "success"})
}

// MoveToEnd handles POST /favorites/move-to-end
func (h *Handler) MoveToEnd(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	if err := h.manager.MoveToEnd(req.ID); err != nil {
		h.navError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"status": "success"})
}

// SwapFavorites handles POST /favorites/swap
func (h *Handler) SwapFavorites(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	if err := h.manager.Swap(req.ID1, req.ID2); err != nil {
		h.navError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"status": "success"})
}

// GoToPosition handles POST /favorites/go-to
func (h *Handler) GoToPosition(c *gin.Context) {
	var req GoToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	if err := h.manager.GoTo(req.Position); err != nil {
		h.navError(c, err)
		return
	}

	loc, pos, err := h.manager.Current()
	if err != nil {
		h.navError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"status": "success", "location": loc, "position": pos})
}

// GoToName handles POST /favorites/go-to-name
func (h *Handler) GoToName(c *gin.Context) {
	var req GoToNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	if err := h.manager.GoToName(req.Name); err != nil {
		h.navError(c, err)
		return
	}

	loc, pos, err := h.manager.Current()
	if err != nil {
		h.navError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"status": "success", "location": loc, "position": pos})
}

// navError maps cursor and reorder errors onto status codes by error class
// rather than the flat-500 contract of the base list endpoints.
func (h *Handler) navError(c *gin.Context, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.AppErrorResponse(c, appErr)
		return
	}
	common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
}
