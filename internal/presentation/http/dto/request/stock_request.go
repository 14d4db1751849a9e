package request

import "github.com/sangkips/warehouse-api/internal/domain/entity"

// CreateStockRequest represents a create stock request
type CreateStockRequest struct {
	WarehouseID   int64             `json:"warehouse_id"`
	SystemCode    string            `json:"systemCode"`
	SupplierCode  string            `json:"supplierCode"`
	ItemType      string            `json:"itemType" binding:"required"`
	ItemName      string            `json:"itemName" binding:"required"`
	SupplierPrice entity.UnitValues `json:"supplierPrice"`
	RetailPrice   entity.UnitValues `json:"retailPrice"`
	Quantity      entity.UnitValues `json:"quantity"`
	Remarks       *string           `json:"remarks"`
}

// AdjustStockRequest represents a stock adjustment
type AdjustStockRequest struct {
	SupplierPrice *entity.UnitValues `json:"supplierPrice"`
	RetailPrice   *entity.UnitValues `json:"retailPrice"`
	Quantity      *entity.UnitValues `json:"quantity"`
	Remarks       *string            `json:"remarks"`
}

// StockListQuery are the query parameters of the stock list
type StockListQuery struct {
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
	WarehouseID int64  `form:"warehouse_id"`
	Search      string `form:"search"`
	Category    string `form:"category"`
}
