package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/inventory/backend/internal/application/inventory"
	"go.uber.org/zap"
)

// StockHandler handles stock level and stock transaction endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService, logger *zap.Logger) *StockHandler {
	return &StockHandler{
		BaseHandler:  newBaseHandler(logger),
		stockService: stockService,
	}
}

// ListLevels godoc
// @ID           listStockLevels
// @Summary      List stock levels
// @Description  One row per item and location with item and location labels
// @Tags         stock
// @Produce      json
// @Param        search query string false "Search over item sku/name and location name/code"
// @Param        item_id query int false "Item filter"
// @Param        location_id query int false "Location filter"
// @Param        below_min query bool false "Only rows under their threshold"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Param        sort_by query string false "Sort field" Enums(id, qty_on_hand, updated_at, sku, item_name, location_name)
// @Param        sort_order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]inventoryapp.StockLevelResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /stock-levels [get]
func (h *StockHandler) ListLevels(c *gin.Context) {
	filter, ok := h.ParseList(c,
		int64Query("item_id"),
		int64Query("location_id"),
		boolQuery("below_min"),
	)
	if !ok {
		return
	}
	page, err := h.stockService.ListStockLevels(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// ListTransactions godoc
// @ID           listTransactions
// @Summary      List stock transactions
// @Description  Newest first unless another order is requested
// @Tags         transactions
// @Produce      json
// @Param        search query string false "Search over item, location, ref and note"
// @Param        item_id query int false "Item filter"
// @Param        location_id query int false "Location filter"
// @Param        user_id query int false "Actor filter"
// @Param        tx_type query string false "Type filter" Enums(IN, OUT, ADJ, XFER)
// @Param        from query string false "Earliest tx_at (RFC 3339 or YYYY-MM-DD)"
// @Param        to query string false "Latest tx_at (RFC 3339 or YYYY-MM-DD, inclusive)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Param        sort_by query string false "Sort field" Enums(id, tx_at, qty, tx_type, created_at)
// @Param        sort_order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]inventoryapp.TransactionResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions [get]
func (h *StockHandler) ListTransactions(c *gin.Context) {
	filter, ok := h.ParseList(c,
		int64Query("item_id"),
		int64Query("location_id"),
		int64Query("user_id"),
		stringQuery("tx_type"),
		timeQuery("from"),
		untilQuery("to"),
	)
	if !ok {
		return
	}
	page, err := h.stockService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetTransaction godoc
// @ID           getTransaction
// @Summary      Get stock transaction by ID
// @Tags         transactions
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Success      200 {object} dto.Response{data=inventoryapp.TransactionResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [get]
func (h *StockHandler) GetTransaction(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	tx, err := h.stockService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// CreateTransaction godoc
// @ID           createTransaction
// @Summary      Record a stock transaction
// @Description  Applies the signed quantity to the stock level in the same database transaction.
// @Description  Fails with ERR_INSUFFICIENT_STOCK when negative stock is not allowed.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateTransactionRequest true "Transaction"
// @Success      201 {object} dto.Response{data=inventoryapp.TransactionResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions [post]
func (h *StockHandler) CreateTransaction(c *gin.Context) {
	actorID, ok := h.CallerID(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tx, err := h.stockService.CreateTransaction(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// UpdateTransaction godoc
// @ID           updateTransaction
// @Summary      Change a stock transaction
// @Description  Reverses the previous stock effect and applies the new one atomically
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Param        request body inventoryapp.UpdateTransactionRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=inventoryapp.TransactionResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [put]
func (h *StockHandler) UpdateTransaction(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tx, err := h.stockService.UpdateTransaction(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// DeleteTransaction godoc
// @ID           deleteTransaction
// @Summary      Delete a stock transaction
// @Description  Reverses the stock effect and removes the record
// @Tags         transactions
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Success      200 {object} dto.Response{data=inventoryapp.DeleteTransactionResult}
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [delete]
func (h *StockHandler) DeleteTransaction(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	result, err := h.stockService.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
