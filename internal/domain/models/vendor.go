package models

import "time"

// Vendor is a seller whose products are listed in the catalog.
type Vendor struct {
	ID        string
	Name      string
	Code      string // unique slug, derived from Name when not provided
	CreatedBy *string
	CreatedOn time.Time
	UpdatedOn time.Time
}
