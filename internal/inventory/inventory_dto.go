package inventory

type RegisterRequest struct {
	Name     string `json:"inventory_item_name" binding:"required"`
	Category string `json:"inventory_item_category" binding:"required"`
	Numbers  string `json:"inventory_item_numbers" binding:"required"`
	BuyPrice string `json:"inventory_buy_price" binding:"required"`
}

type ItemResponse struct {
	ID        int64  `json:"inventory_id"`
	Name      string `json:"inventory_item_name"`
	Category  string `json:"inventory_item_category"`
	Numbers   string `json:"inventory_item_numbers"`
	BuyPrice  string `json:"inventory_buy_price"`
	CreatedAt string `json:"inventory_created_at"`
	RenewedAt string `json:"inventory_renewed_at"`
}
