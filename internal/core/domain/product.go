package domain

import "github.com/shopspring/decimal"

// Product is a catalog item managed by the inventory tool.
type Product struct {
	ProductID     string          `json:"productID"`
	SKU           string          `json:"sku"` // Unique
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	StockQuantity int64           `json:"stockQuantity"` // Never negative
	ReorderLevel  int64           `json:"reorderLevel"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// IsLowStock reports whether the product needs restocking.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.ReorderLevel
}
