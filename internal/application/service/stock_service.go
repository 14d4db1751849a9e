package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/enum"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
	"github.com/sangkips/warehouse-api/pkg/apperror"
	"github.com/sangkips/warehouse-api/pkg/pagination"
	"github.com/sangkips/warehouse-api/pkg/utils"
)

// StockService handles stock-related operations
type StockService struct {
	stockRepo repository.StockRepository
	intN      utils.IntN
}

// NewStockService creates a new stock service
func NewStockService(stockRepo repository.StockRepository) *StockService {
	return &StockService{stockRepo: stockRepo, intN: utils.DefaultIntN}
}

// CreateStockInput represents the create stock input
type CreateStockInput struct {
	WarehouseID   int64
	SystemCode    string
	SupplierCode  string
	ItemType      string
	ItemName      string
	SupplierPrice entity.UnitValues
	RetailPrice   entity.UnitValues
	Quantity      entity.UnitValues
	Remarks       *string
}

// CreateStock creates a stock row, generating the system code when none is given
func (s *StockService) CreateStock(ctx context.Context, input *CreateStockInput) (*entity.Stock, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.ItemName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "itemName", Message: "Item name is required"})
	}
	if !enum.ItemCategory(input.ItemType).IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "itemType", Message: "Unknown item type"})
	}
	fieldErrors = append(fieldErrors, checkUnitValues("supplierPrice", input.SupplierPrice)...)
	fieldErrors = append(fieldErrors, checkUnitValues("retailPrice", input.RetailPrice)...)
	fieldErrors = append(fieldErrors, checkUnitValues("quantity", input.Quantity)...)
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	code := strings.TrimSpace(input.SystemCode)
	if code == "" {
		code = utils.GenerateSystemCode(input.ItemType, s.intN)
	}
	if input.WarehouseID == 0 {
		input.WarehouseID = DefaultOwnerID
	}

	stock := &entity.Stock{
		WarehouseID:   input.WarehouseID,
		SystemCode:    code,
		SupplierCode:  input.SupplierCode,
		ItemType:      input.ItemType,
		ItemName:      input.ItemName,
		SupplierPrice: input.SupplierPrice,
		RetailPrice:   input.RetailPrice,
		Quantity:      input.Quantity,
		Remarks:       input.Remarks,
	}
	stock.RefreshStatus()

	if err := s.stockRepo.Create(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// GetStock retrieves a stock row by ID
func (s *StockService) GetStock(ctx context.Context, id uuid.UUID) (*entity.Stock, error) {
	stock, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, apperror.NewNotFoundError("Stock")
	}
	return stock, nil
}

// ListStocks lists stocks with filtering
func (s *StockService) ListStocks(ctx context.Context, params *repository.StockFilterParams) (*pagination.PaginatedResult[entity.Stock], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	stocks, total, err := s.stockRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(stocks, pag), nil
}

// AdjustStockInput represents a stock adjustment; nil groups are left alone
type AdjustStockInput struct {
	ID            uuid.UUID
	SupplierPrice *entity.UnitValues
	RetailPrice   *entity.UnitValues
	Quantity      *entity.UnitValues
	Remarks       *string
}

// AdjustStock overwrites prices and quantities and recomputes the status
func (s *StockService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.Stock, error) {
	stock, err := s.GetStock(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	var fieldErrors []apperror.FieldError
	if input.SupplierPrice != nil {
		fieldErrors = append(fieldErrors, checkUnitValues("supplierPrice", *input.SupplierPrice)...)
	}
	if input.RetailPrice != nil {
		fieldErrors = append(fieldErrors, checkUnitValues("retailPrice", *input.RetailPrice)...)
	}
	if input.Quantity != nil {
		fieldErrors = append(fieldErrors, checkUnitValues("quantity", *input.Quantity)...)
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.SupplierPrice != nil {
		stock.SupplierPrice = *input.SupplierPrice
	}
	if input.RetailPrice != nil {
		stock.RetailPrice = *input.RetailPrice
	}
	if input.Quantity != nil {
		stock.Quantity = *input.Quantity
	}
	if input.Remarks != nil {
		stock.Remarks = input.Remarks
	}
	stock.RefreshStatus()

	if err := s.stockRepo.Update(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// DeleteStock deletes a stock row
func (s *StockService) DeleteStock(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetStock(ctx, id); err != nil {
		return err
	}
	return s.stockRepo.Delete(ctx, id)
}

// checkUnitValues accepts empty values and non-negative plain numbers
func checkUnitValues(group string, v entity.UnitValues) []apperror.FieldError {
	var out []apperror.FieldError
	for _, unit := range enum.StockUnits {
		raw := strings.TrimSpace(v.Get(unit))
		if raw == "" {
			continue
		}
		d, err := entity.ParseNumber(raw)
		if err != nil || d.IsNegative() {
			out = append(out, apperror.FieldError{
				Field:   fmt.Sprintf("%s.%s", group, unit),
				Message: "Must be a non-negative number",
			})
		}
	}
	return out
}
