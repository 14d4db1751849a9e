package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/warehouse-api/internal/domain/entity"
	domainRepo "github.com/sangkips/warehouse-api/internal/domain/repository"
	"gorm.io/gorm"
)

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

func (r *stockRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Stock, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).First(&stock, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &stock, err
}

func (r *stockRepository) Update(ctx context.Context, stock *entity.Stock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

func (r *stockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Stock{}, "id = ?", id).Error
}

func (r *stockRepository) List(ctx context.Context, params *domainRepo.StockFilterParams) ([]entity.Stock, int64, error) {
	var stocks []entity.Stock
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Stock{})
	if params.WarehouseID != 0 {
		query = query.Where("warehouse_id = ?", params.WarehouseID)
	}

	// LOWER ... LIKE keeps the query portable between SQLite and Postgres
	if search := strings.ToLower(strings.TrimSpace(params.Search)); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"LOWER(system_code) LIKE ? OR LOWER(supplier_code) LIKE ? OR LOWER(item_type) LIKE ? OR LOWER(item_name) LIKE ?",
			like, like, like, like,
		)
	}

	if params.Category != "" {
		query = query.Where("item_type = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(params.Pagination.Scope()).
		Order("item_name ASC").
		Find(&stocks).Error

	return stocks, total, err
}
