package models

import "time"

// Address types. Orders require one address of each type.
const (
	AddressShipping = "shipping"
	AddressBilling  = "billing"
)

// Address belongs to a single user and is referenced by orders.
type Address struct {
	ID        string
	Type      string
	FirstName string
	LastName  string
	Line1     string
	Line2     string
	City      string
	State     string
	Zipcode   string
	Country   string
	UserID    string
	CreatedOn time.Time
	UpdatedOn time.Time
}
