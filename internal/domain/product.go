package domain

import "time"

// Inventory change kinds recorded in the audit log.
const (
	ChangeTypeAdd    = "add"
	ChangeTypeRemove = "remove"
	ChangeTypeUpdate = "update"
)

// Product is the authoritative quantity record for a named item.
// Products are created on first add and never hard-deleted; a sold-out
// product stays as a zero-quantity row.
type Product struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"uniqueIndex;size:200" json:"name" form:"name"`
	Quantity  int64     `json:"quantity" form:"quantity"`
	Price     float64   `json:"price" form:"price"`
	Category  string    `gorm:"size:100" json:"category" form:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// InventoryLog is a write-once audit entry, one row per successful mutation.
type InventoryLog struct {
	ID             int64     `json:"id,string"`
	ProductID      int64     `gorm:"index" json:"product_id,string"`
	ChangeType     string    `gorm:"size:16" json:"change_type"`
	QuantityChange int64     `json:"quantity_change"`
	NewQuantity    int64     `json:"new_quantity"`
	Reason         string    `gorm:"size:255" json:"reason"`
	UserID         int64     `gorm:"index" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName Specify table name
func (InventoryLog) TableName() string {
	return "inventory_logs"
}
