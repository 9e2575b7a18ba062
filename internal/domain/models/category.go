package models

import "time"

// ProductCategory groups products in the catalog.
type ProductCategory struct {
	ID        string
	Name      string
	Code      string // unique slug, derived from Name when not provided
	CreatedOn time.Time
	UpdatedOn time.Time
}
