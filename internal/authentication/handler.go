package authentication

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/expensaver/expensaver-api/internal/account"
)

// RegisterRequest is the payload for creating an account. Exactly one of
// email and phone must be set.
type RegisterRequest struct {
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"omitempty,e164"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required,max=72"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshRequest is the payload for rotating the token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// DeleteAccountRequest re-confirms the password before deleting the caller's account.
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// TokenResponse contains both access and refresh tokens.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterResponse returns the new account with its first token pair.
type RegisterResponse struct {
	Account      *account.Account `json:"account"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
}

// AuthHandler handles authentication-related HTTP endpoints.
type AuthHandler struct {
	service AuthenticationService
	logger  *zap.Logger
}

// NewAuthHandler registers the credential endpoints on public and the session
// endpoints on authenticated, which must be guarded by AuthMiddleware.
func NewAuthHandler(public, authenticated *gin.RouterGroup, service AuthenticationService, logger *zap.Logger) *AuthHandler {
	h := &AuthHandler{service: service, logger: logger}
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
	public.POST("/auth/refresh", h.Refresh)
	authenticated.POST("/auth/logout", h.Logout)
	authenticated.DELETE("/auth/account", h.DeleteAccount)
	return h
}

// Register godoc
// @Summary      Register
// @Description  Create an account identified by email or phone and issue its first tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      RegisterRequest  true  "Registration payload"
// @Success      201      {object}  RegisterResponse
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload", "code": "invalid_input"})
		return
	}
	if (req.Email == "") == (req.Phone == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of email or phone is required", "code": "invalid_input"})
		return
	}
	identifier := req.Email
	if identifier == "" {
		identifier = req.Phone
	}

	acc, pair, err := h.service.Register(c.Request.Context(), identifier, req.DisplayName, req.Password)
	if err != nil {
		h.fail(c, "Register", err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusCreated, RegisterResponse{
		Account:      acc,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Login godoc
// @Summary      Login
// @Description  Authenticate and issue a new token pair, revoking the previous one
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      LoginRequest  true  "Login credentials"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifier and password required", "code": "invalid_input"})
		return
	}
	pair, err := h.service.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		h.fail(c, "Login", err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, TokenResponse(pair))
}

// Refresh godoc
// @Summary      Refresh Token
// @Description  Rotate the token pair; the presented refresh token stops working
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      RefreshRequest  true  "Refresh token payload"
// @Success      200      {object}  TokenResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid refresh payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid refresh payload", "code": "invalid_input"})
		return
	}
	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, "Refresh", err, http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, TokenResponse(pair))
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the current token pair
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claim, ok := ClaimFromContext(c)
	if !ok {
		abortWithError(c, ErrMissingToken, http.StatusUnauthorized)
		return
	}
	if err := h.service.Logout(c.Request.Context(), claim); err != nil {
		h.fail(c, "Logout", err, http.StatusUnauthorized)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAccount godoc
// @Summary      Delete Account
// @Description  Permanently delete the caller's account after re-checking the password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        payload  body      DeleteAccountRequest  true  "Password confirmation"
// @Success      204
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /auth/account [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	claim, ok := ClaimFromContext(c)
	if !ok {
		abortWithError(c, ErrMissingToken, http.StatusUnauthorized)
		return
	}
	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid delete account payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "password required", "code": "invalid_input"})
		return
	}
	if err := h.service.DeleteAccount(c.Request.Context(), claim, req.Password); err != nil {
		h.fail(c, "DeleteAccount", err, http.StatusUnauthorized)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) fail(c *gin.Context, op string, err error, notFoundStatus int) {
	status, _ := errorResponse(err, notFoundStatus)
	if status >= http.StatusInternalServerError {
		h.logger.Error(op+" service failed", zap.Error(err))
	}
	abortWithError(c, err, notFoundStatus)
}
