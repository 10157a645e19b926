package materials

import (
	"time"
)

// Material statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Material represents a material master record.
type Material struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Specification *string   `json:"specification"`
	Unit          string    `json:"unit"`
	Price         *float64  `json:"price"`
	Stock         int       `json:"stock"`
	MinStock      int       `json:"minStock"`
	MaxStock      *int      `json:"maxStock"`
	Supplier      *string   `json:"supplier"`
	Location      *string   `json:"location"`
	Description   *string   `json:"description"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// StockStatistics aggregates the inventory position across all materials.
// TotalStockValue is the sum of stock quantity over rows with a non-null
// price; the quantity is not multiplied by the price. See DESIGN.md.
type StockStatistics struct {
	TotalMaterials    int   `json:"totalMaterials"`
	ActiveMaterials   int   `json:"activeMaterials"`
	LowStockMaterials int   `json:"lowStockMaterials"`
	TotalStockValue   int64 `json:"totalStockValue"`
}
