package models

import "time"

// Card is a payment card owned by a user.
type Card struct {
	ID        string
	Name      string
	Number    string
	ExpiresOn time.Time
	UserID    string
	CreatedOn time.Time
	UpdatedOn time.Time
}
