package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextAccountIDKey is the key under which the authenticated account ID is stored in Gin context.
const ContextAccountIDKey = "account_id"

// IDRequest represents a URI ID parameter.
// @Description contains the resource ID in path
// @Param id path int true "resource identifier"
type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// AccountHandler handles HTTP requests for account resources.
type AccountHandler struct {
	service AccountService
	logger  *zap.Logger
}

// NewAccountHandler registers /accounts/me on an authenticated group and the
// lookup endpoints on an admin group.
func NewAccountHandler(authenticated, admin *gin.RouterGroup, service AccountService, logger *zap.Logger) *AccountHandler {
	h := &AccountHandler{service: service, logger: logger}
	authenticated.GET("/accounts/me", h.ReadCurrentAccount)
	admin.GET("/accounts/:id", h.ReadAccountByID)
	admin.GET("/accounts", h.ReadAccountByIdentifier)
	return h
}

// ReadCurrentAccount returns the authenticated account.
// @Summary      Get current account
// @Description  Fetch the "me" record for the authenticated account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Account
// @Failure      401 {object} map[string]string
// @Router       /accounts/me [get]
func (h *AccountHandler) ReadCurrentAccount(c *gin.Context) {
	id := c.GetUint(ContextAccountIDKey)
	if id == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	a, err := h.service.ReadAccountByID(c.Request.Context(), id)
	h.respond(c, a, err)
}

// ReadAccountByID godoc
// @Summary      Get Account by ID
// @Description  Fetch an account by its ID (admin only)
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int     true  "Account ID"
// @Success      200      {object}  Account
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /accounts/{id} [get]
func (h *AccountHandler) ReadAccountByID(c *gin.Context) {
	var uri IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return
	}
	a, err := h.service.ReadAccountByID(c.Request.Context(), uri.ID)
	h.respond(c, a, err)
}

// ReadAccountByIdentifier godoc
// @Summary      Get Account by identifier
// @Description  Fetch an account by email or phone (admin only)
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        identifier  query     string  true  "Email address or phone number"
// @Success      200         {object}  Account
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Failure      503         {object}  map[string]string
// @Router       /accounts [get]
func (h *AccountHandler) ReadAccountByIdentifier(c *gin.Context) {
	identifier := c.Query("identifier")
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifier query parameter required"})
		return
	}
	a, err := h.service.ReadAccountByIdentifier(c.Request.Context(), identifier)
	h.respond(c, a, err)
}

func (h *AccountHandler) respond(c *gin.Context, a *Account, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, a)
	case errors.Is(err, ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
	case errors.Is(err, ErrUnresponsiveDatabase):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "account store unavailable"})
	default:
		h.logger.Error("account lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch account"})
	}
}
