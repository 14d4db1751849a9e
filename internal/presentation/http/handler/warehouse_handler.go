package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/warehouse-api/internal/application/service"
	"github.com/sangkips/warehouse-api/internal/presentation/http/dto/request"
	"github.com/sangkips/warehouse-api/internal/presentation/http/dto/response"
	"github.com/sangkips/warehouse-api/pkg/apperror"
)

// WarehouseHandler handles warehouse selection
type WarehouseHandler struct {
	warehouseService *service.WarehouseService
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(warehouseService *service.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// List returns the warehouses the operator can pick from
func (h *WarehouseHandler) List(c *gin.Context) {
	response.OK(c, "Warehouses retrieved", h.warehouseService.ListWarehouses(c.Request.Context()))
}

// Select stores the chosen warehouse on the operator's receiving session
func (h *WarehouseHandler) Select(c *gin.Context) {
	var req request.SelectWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	user, ok := GetUser(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	state, err := h.warehouseService.SelectWarehouse(user, req.WarehouseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Warehouse selected", state)
}
