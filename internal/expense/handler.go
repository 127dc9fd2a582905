package expense

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/expensaver/expensaver-api/internal/account"
)

// ExpenseRequest is the payload for creating or replacing an expense.
type ExpenseRequest struct {
	Title    string    `json:"title" binding:"required"`
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	Quantity int       `json:"quantity" binding:"omitempty,min=1"`
	SpentAt  time.Time `json:"spent_at"`
}

func (r ExpenseRequest) changes() Changes {
	return Changes{Title: r.Title, Amount: r.Amount, Quantity: r.Quantity, SpentAt: r.SpentAt}
}

type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// ExpenseHandler serves the expenses of the authenticated account. The group it is
// registered on must set account.ContextAccountIDKey.
type ExpenseHandler struct {
	service ExpenseService
	logger  *zap.Logger
}

func NewExpenseHandler(router *gin.RouterGroup, service ExpenseService, logger *zap.Logger) *ExpenseHandler {
	h := &ExpenseHandler{service: service, logger: logger}
	router.GET("/expenses", h.ListExpenses)
	router.POST("/expenses", h.CreateExpense)
	router.PUT("/expenses/:id", h.UpdateExpense)
	router.DELETE("/expenses/:id", h.DeleteExpense)
	return h
}

func (h *ExpenseHandler) owner(c *gin.Context) (uint, bool) {
	id := c.GetUint(account.ContextAccountIDKey)
	if id == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return id, true
}

func (h *ExpenseHandler) bindID(c *gin.Context) (uint, bool) {
	var uri IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing id"})
		return 0, false
	}
	return uri.ID, true
}

// ListExpenses godoc
// @Summary      List expenses
// @Description  Expenses of the authenticated account, newest first
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  Expense
// @Failure      401 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	accountID, ok := h.owner(c)
	if !ok {
		return
	}
	expenses, err := h.service.ListExpenses(c.Request.Context(), accountID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

// CreateExpense godoc
// @Summary      Create expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      ExpenseRequest  true  "Expense payload"
// @Success      201      {object}  Expense
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	accountID, ok := h.owner(c)
	if !ok {
		return
	}
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and positive amount required"})
		return
	}
	e, err := h.service.CreateExpense(c.Request.Context(), accountID, req.changes())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// UpdateExpense godoc
// @Summary      Update expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int             true  "Expense ID"
// @Param        payload  body      ExpenseRequest  true  "Expense payload"
// @Success      200      {object}  Expense
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	accountID, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid expense payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and positive amount required"})
		return
	}
	e, err := h.service.UpdateExpense(c.Request.Context(), accountID, id, req.changes())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DeleteExpense godoc
// @Summary      Delete expense
// @Tags         expenses
// @Security     BearerAuth
// @Param        id  path  int  true  "Expense ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	accountID, ok := h.owner(c)
	if !ok {
		return
	}
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteExpense(c.Request.Context(), accountID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExpenseHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidExpense):
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and positive amount required"})
	case errors.Is(err, ErrExpenseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
	case errors.Is(err, ErrUnresponsiveDatabase):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "expense store unavailable"})
	default:
		h.logger.Error("expense request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process expense"})
	}
}
