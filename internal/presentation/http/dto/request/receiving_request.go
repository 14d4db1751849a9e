package request

import "github.com/sangkips/warehouse-api/internal/domain/entity"

// UpdateDraftRequest changes the header of the open receiving form
type UpdateDraftRequest struct {
	Supplier *string `json:"supplier"`
	DateTime *string `json:"dateTime"`
	Remarks  *string `json:"remarks"`
}

// AddItemRequest is the add-item dialog
type AddItemRequest struct {
	Supplier       string `json:"supplier"`
	Category       string `json:"category" binding:"required"`
	SystemCode     string `json:"systemCode"`
	SupplierCode   string `json:"supplierCode"`
	ItemName       string `json:"itemName" binding:"required"`
	ShellQuantity  string `json:"shellQuantity"`
	BottleQuantity string `json:"bottleQuantity"`
}

// UpdateItemRequest sets one field of a line, e.g. "quantity.box"
type UpdateItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// AddReturnItemRequest appends a returned line
type AddReturnItemRequest struct {
	SystemCode    string            `json:"systemCode"`
	SupplierCode  string            `json:"supplierCode"`
	ItemType      string            `json:"itemType"`
	ItemName      string            `json:"itemName" binding:"required"`
	SupplierPrice entity.UnitValues `json:"supplierPrice"`
	Quantity      entity.UnitValues `json:"quantity"`
}

// SelectWarehouseRequest picks the warehouse for new transactions
type SelectWarehouseRequest struct {
	WarehouseID int64 `json:"warehouse_id" binding:"required,min=1"`
}
