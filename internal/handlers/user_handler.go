package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/collaboration-service/internal/repositories"
	"github.com/SAP-F-2025/collaboration-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userRepo repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userRepo:    userRepo,
	}
}

// ListUsers is the directory used when composing messages: paginated,
// scoped to the caller's workspace, optional name/email search.
func (h *UserHandler) ListUsers(c *gin.Context) {
	identity, err := GetIdentityFromContext(c)
	if err != nil {
		h.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
		return
	}

	h.LogRequest(c, "Listing users")

	filters := h.parseUserFilters(c)
	filters.Workspace = identity.Workspace

	users, total, err := h.userRepo.List(c.Request.Context(), filters)
	if err != nil {
		h.LogError(c, err, "Failed to list users")
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	page := (filters.Offset / max(filters.Limit, 1)) + 1

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"size":  filters.Limit,
	})
}

func (h *UserHandler) parseUserFilters(c *gin.Context) repositories.UserFilters {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 || size > 100 {
		size = 20
	}

	return repositories.UserFilters{
		Query:  c.Query("q"),
		Limit:  size,
		Offset: (page - 1) * size,
	}
}
