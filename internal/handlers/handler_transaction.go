package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TidonAM/ODET/internal/apperrors"
	"github.com/TidonAM/ODET/internal/core/domain"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/dto"
	"github.com/TidonAM/ODET/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions. It
// also needs account and category reads to resolve references in
// responses; dangling ids resolve to nothing and the client renders a
// placeholder.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	accountService     portssvc.AccountReaderSvc
	categoryService    portssvc.CategoryReaderSvc
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, as portssvc.AccountReaderSvc, cs portssvc.CategoryReaderSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		accountService:     as,
		categoryService:    cs,
	}
}

// RegisterTransactionRoutes registers routes related to transactions.
// Exported so handler tests can wire mocked services onto a bare router.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, as portssvc.AccountReaderSvc, cs portssvc.CategoryReaderSvc) {
	h := newTransactionHandler(ts, as, cs)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransactionByID)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// lookupMaps fetches the user's accounts and categories keyed by id for
// reference resolution.
func (h *transactionHandler) lookupMaps(c *gin.Context, userID string) (map[string]domain.Account, map[string]domain.Category, error) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		return nil, nil, err
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		return nil, nil, err
	}

	accountsByID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsByID[acc.AccountID] = acc
	}
	categoriesByID := make(map[string]domain.Category, len(categories))
	for _, cat := range categories {
		categoriesByID[cat.CategoryID] = cat
	}
	return accountsByID, categoriesByID, nil
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records a transaction in the active period. Fails when no period has been started.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "No active period"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoActivePeriod):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "No active period; start one before recording transactions"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create transaction"})
		}
		return
	}

	accounts, categories, err := h.lookupMaps(c, userID)
	if err != nil {
		logger.Error("Failed to resolve references for transaction response", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create transaction"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn, accounts, categories))
}

// listTransactions godoc
// @Summary List transactions of a period
// @Description Retrieves one period's transactions, newest first. Without resetID the active period is used; with no period at all the list is empty.
// @Tags transactions
// @Produce  json
// @Param   resetID query string false "Period (reset) ID; defaults to the active period"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} ErrorResponse "Unknown period"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resetID := c.Query("resetID")
	txns, err := h.transactionService.ListTransactions(c.Request.Context(), userID, resetID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoActivePeriod):
			// No period yet: nothing to show, not an error.
			c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: []dto.TransactionResponse{}})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Period not found"})
		default:
			logger.Error("Failed to list transactions in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		}
		return
	}

	accounts, categories, err := h.lookupMaps(c, userID)
	if err != nil {
		logger.Error("Failed to resolve references for transaction list", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list transactions"})
		return
	}

	if resetID == "" && len(txns) > 0 {
		resetID = txns[0].ResetID
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(resetID, txns, accounts, categories))
}

// getTransactionByID godoc
// @Summary Get a transaction
// @Description Retrieves a single transaction with its references resolved
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransactionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transaction"})
		return
	}

	accounts, categories, err := h.lookupMaps(c, userID)
	if err != nil {
		logger.Error("Failed to resolve references for transaction response", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn, accounts, categories))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates a transaction's fields. The period a transaction belongs to never changes.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update transaction"})
		}
		return
	}

	accounts, categories, err := h.lookupMaps(c, userID)
	if err != nil {
		logger.Error("Failed to resolve references for transaction response", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn, accounts, categories))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deletes a transaction and refreshes the dashboard state
// @Tags transactions
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Transaction not found"})
			return
		}
		logger.Error("Failed to delete transaction in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete transaction"})
		return
	}

	c.Status(http.StatusNoContent)
}
