package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse sends a 200 response with the given payload
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// CreatedResponse sends a 201 response with the given payload
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// ErrorResponse sends an error response in the canonical {"error": message} shape
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// AppErrorResponse sends an error response with the status implied by the error code
func AppErrorResponse(c *gin.Context, err *AppError) {
	ErrorResponse(c, err.HTTPStatus(), err.Message)
}

// DomainErrorResponse maps err to the flat-500 contract used by the catalog and
// favorites endpoints: input validation problems answer 400, everything else
// (not-found included) answers 500 with the error message.
func DomainErrorResponse(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == CodeValidation {
		ErrorResponse(c, http.StatusBadRequest, appErr.Message)
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, err.Error())
}
