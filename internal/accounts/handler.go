package accounts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/validation"
)

// Handler handles HTTP requests for accounts
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new accounts handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateAccount handles POST /accounts. Both missing fields and duplicate
// usernames answer 400.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	user, err := h.service.CreateAccount(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.accountError(c, err)
		return
	}

	common.CreatedResponse(c, gin.H{"message": "Account created successfully", "user": user})
}

// Login handles POST /login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.accountError(c, err)
		return
	}

	common.SuccessResponse(c, resp)
}

// UpdatePassword handles POST /password
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	err := h.service.UpdatePassword(c.Request.Context(), req.Username, req.OldPassword, req.NewPassword)
	if err != nil {
		h.accountError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Password updated successfully"})
}

// accountError maps account errors onto the account endpoint contract:
// duplicates and bad input answer 400, failed verification answers 401.
func (h *Handler) accountError(c *gin.Context, err error) {
	switch {
	case common.IsCode(err, common.CodeDuplicate), common.IsCode(err, common.CodeValidation):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case common.IsCode(err, common.CodeUnauthorized):
		common.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
