package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/warehouse-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock represents the on-hand position of one item in a warehouse
type Stock struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	WarehouseID   int64            `gorm:"not null;index" json:"warehouse_id"`
	SystemCode    string           `gorm:"size:100;index" json:"systemCode"`
	SupplierCode  string           `gorm:"size:100" json:"supplierCode"`
	ItemType      string           `gorm:"size:100;index" json:"itemType"`
	ItemName      string           `gorm:"size:255;not null" json:"itemName"`
	SupplierPrice UnitValues       `gorm:"embedded;embeddedPrefix:supplier_price_" json:"supplierPrice"`
	RetailPrice   UnitValues       `gorm:"embedded;embeddedPrefix:retail_price_" json:"retailPrice"`
	Quantity      UnitValues       `gorm:"embedded;embeddedPrefix:quantity_" json:"quantity"`
	Status        enum.StockStatus `gorm:"default:0" json:"status"`
	Remarks       *string          `gorm:"type:text" json:"remarks,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock row
func (s *Stock) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Stock model
func (Stock) TableName() string {
	return "stocks"
}

// RefreshStatus derives Status from the shells on hand. Unparseable quantities count as zero.
func (s *Stock) RefreshStatus() {
	shells, err := ParseNumber(s.Quantity.Shell)
	if err != nil {
		shells = decimal.Zero
	}
	s.Status = enum.StockStatusForShell(shells)
}

// MirrorEntry is one key of the local mirror key/value store
type MirrorEntry struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the MirrorEntry model
func (MirrorEntry) TableName() string {
	return "mirror_entries"
}
