package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/collaboration-service/internal/authz"
	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
	"github.com/SAP-F-2025/collaboration-service/internal/services"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
	"github.com/SAP-F-2025/collaboration-service/internal/validator"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler provides common behavior for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c, h.logger).Error(msg, args...)
}

func (h *BaseHandler) RespondWithError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(status, resp)
}

// handleServiceError maps service/repository errors onto the HTTP taxonomy.
// 401 and 403 stay distinct throughout.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		h.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
	case errors.Is(err, authz.ErrForbidden):
		h.RespondWithError(c, http.StatusForbidden, "Permission denied", err)
	case errors.Is(err, services.ErrInvalidPayload):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid payload", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, services.ErrEmailTaken):
		h.RespondWithError(c, http.StatusConflict, "Email already registered", nil)
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   http.StatusText(http.StatusBadRequest),
			Message: "Validation failed",
			Details: validationErrs,
		})
	case repositories.IsNotFoundError(err):
		h.RespondWithError(c, http.StatusNotFound, "Not found", err)
	default:
		h.LogError(c, err, "Unhandled service error")
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
