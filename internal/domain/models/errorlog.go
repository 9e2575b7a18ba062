package models

import "time"

// ErrorLog is a persisted record of an error that was deliberately swallowed,
// such as a failed inventory restore during order update or delete.
type ErrorLog struct {
	ID        string
	Name      string
	Message   string
	Stack     string
	CreatedOn time.Time
}
