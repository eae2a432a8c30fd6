package inventory

import "time"

// Item is one stock line. Quantity and price are stored as entered.
type Item struct {
	ID        int64     `gorm:"column:inventory_id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:inventory_item_name"`
	Category  string    `gorm:"column:inventory_item_category"`
	Numbers   string    `gorm:"column:inventory_item_numbers"`
	BuyPrice  string    `gorm:"column:inventory_buy_price"`
	CreatedAt time.Time `gorm:"column:inventory_created_at"`
	RenewedAt time.Time `gorm:"column:inventory_renewed_at"`
}

func (Item) TableName() string {
	return "inventory"
}
