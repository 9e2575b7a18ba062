package models

import "time"

// Order statuses. Only placed orders may be updated or deleted.
const (
	OrderPlaced   = "placed"
	OrderApproved = "approved"
)

// Order references the placing user, a shipping and a billing address and a
// payment card, all owned by that user. PlacedBy is nullable: the user row
// may be deleted while the order survives.
type Order struct {
	ID                string       `json:"id"`
	Status            string       `json:"status"`
	PlacedBy          *string      `json:"placedBy,omitempty"`
	ShippingAddressID string       `json:"shippingAddressId"`
	BillingAddressID  string       `json:"billingAddressId"`
	PaymentCardID     string       `json:"paymentCardId"`
	Items             []*OrderItem `json:"items"`
	CreatedOn         time.Time    `json:"createdOn"`
	UpdatedOn         time.Time    `json:"updatedOn"`
}

// OrderItem is a single order line. Price is the product unit price
// snapshotted at order time; the product reference is nullable because
// products may be deleted after the order was placed.
type OrderItem struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	ProductID *string   `json:"productId,omitempty"`
	Price     float64   `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedOn time.Time `json:"createdOn"`
}
