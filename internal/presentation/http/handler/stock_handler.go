package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/warehouse-api/internal/application/service"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
	"github.com/sangkips/warehouse-api/internal/presentation/http/dto/request"
	"github.com/sangkips/warehouse-api/internal/presentation/http/dto/response"
	"github.com/sangkips/warehouse-api/pkg/pagination"
)

// StockHandler handles stock-related HTTP requests
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// List lists stocks
// @Summary List stocks
// @Tags stocks
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param warehouse_id query int false "Warehouse"
// @Param search query string false "Code or name"
// @Param category query string false "Item type"
// @Success 200 {object} response.APIResponse
// @Router /stocks [get]
func (h *StockHandler) List(c *gin.Context) {
	var q request.StockListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.stockService.ListStocks(c.Request.Context(), &repository.StockFilterParams{
		Pagination:  &pagination.PaginationParams{Page: q.Page, PerPage: q.PerPage},
		WarehouseID: q.WarehouseID,
		Search:      q.Search,
		Category:    q.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "Stocks retrieved", result)
}

// Create creates a stock row
func (h *StockHandler) Create(c *gin.Context) {
	var req request.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stock, err := h.stockService.CreateStock(c.Request.Context(), &service.CreateStockInput{
		WarehouseID:   req.WarehouseID,
		SystemCode:    req.SystemCode,
		SupplierCode:  req.SupplierCode,
		ItemType:      req.ItemType,
		ItemName:      req.ItemName,
		SupplierPrice: req.SupplierPrice,
		RetailPrice:   req.RetailPrice,
		Quantity:      req.Quantity,
		Remarks:       req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Stock created", stock)
}

// Adjust overwrites prices and quantities of a stock row
func (h *StockHandler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock ID")
		return
	}
	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	stock, err := h.stockService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		ID:            id,
		SupplierPrice: req.SupplierPrice,
		RetailPrice:   req.RetailPrice,
		Quantity:      req.Quantity,
		Remarks:       req.Remarks,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock adjusted", stock)
}

// Delete deletes a stock row
func (h *StockHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock ID")
		return
	}
	if err := h.stockService.DeleteStock(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock deleted", nil)
}
