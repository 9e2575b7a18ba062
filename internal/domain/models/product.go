package models

import "time"

// Product is a catalog entry. Inventory is the current stock count and is
// decremented when order items are created and restored when they are removed.
type Product struct {
	ID           string  `json:"id"`
	SKU          string  `json:"sku"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Inventory    int64   `json:"inventory"`
	DeliveryTime string  `json:"deliveryTime"`
	IsActive     bool    `json:"isActive"`
	VendorID     *string `json:"vendorId,omitempty"`
	CategoryID   *string `json:"categoryId,omitempty"`
	CreatedBy    *string `json:"createdBy,omitempty"`
	CreatedOn    time.Time `json:"createdOn"`
	UpdatedOn    time.Time `json:"updatedOn"`
}
