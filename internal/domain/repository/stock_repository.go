package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/pkg/pagination"
)

// StockRepository defines the interface for stock data operations
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Stock, error)
	Update(ctx context.Context, stock *entity.Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StockFilterParams) ([]entity.Stock, int64, error)
}

// StockFilterParams contains filtering parameters for stock queries
type StockFilterParams struct {
	Pagination  *pagination.PaginationParams
	WarehouseID int64
	// Search matches system code, supplier code, item type or item name
	Search   string
	Category string
}
