package models

import "time"

// Roles assignable to users. Guest is the pseudo-role role guards assume for
// requests that carry no authenticated role; it is never persisted.
const (
	RoleAdmin        = "admin"
	RoleCustomer     = "customer"
	RoleMerchandiser = "merchandiser"
	RoleGuest        = "guest"
)

// User represents an account able to sign in and own addresses, cards and orders.
type User struct {
	ID        string
	Email     string
	PassHash  []byte
	Role      string
	FirstName string
	LastName  string
	CreatedOn time.Time
	UpdatedOn time.Time
}
