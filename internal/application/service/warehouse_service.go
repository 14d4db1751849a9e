package service

import (
	"context"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/sangkips/warehouse-api/internal/domain/repository"
	"github.com/sangkips/warehouse-api/pkg/apperror"
	"go.uber.org/zap"
)

// WarehouseService lists warehouses and records the operator's choice
type WarehouseService struct {
	directory repository.WarehouseDirectory
	registry  *WorkflowRegistry
	logger    *zap.Logger
}

// NewWarehouseService creates a new warehouse service
func NewWarehouseService(directory repository.WarehouseDirectory, registry *WorkflowRegistry, logger *zap.Logger) *WarehouseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarehouseService{directory: directory, registry: registry, logger: logger}
}

// ListWarehouses returns the remote list, or only the default warehouse when it is unavailable
func (s *WarehouseService) ListWarehouses(ctx context.Context) []entity.Warehouse {
	warehouses, err := s.directory.ListWarehouses(ctx)
	if err != nil {
		s.logger.Warn("warehouse list unavailable, using default", zap.Error(err))
		return []entity.Warehouse{entity.DefaultWarehouse}
	}
	if len(warehouses) == 0 {
		return []entity.Warehouse{entity.DefaultWarehouse}
	}
	return warehouses
}

// SelectWarehouse sets the warehouse stamped on the user's future transactions
func (s *WarehouseService) SelectWarehouse(user entity.User, id int64) (WorkflowState, error) {
	if id < 0 {
		return WorkflowState{}, apperror.NewBadRequestError("Invalid warehouse id")
	}
	wf := s.registry.For(user)
	wf.SelectWarehouse(id)
	return wf.State(), nil
}
