package service

import "errors"

// Domain validation errors surfaced to callers as 400-level failures.
var (
	ErrInsufficientInventory = errors.New("not enough inventory for product")
	ErrProductInactive       = errors.New("product is not available anymore")
	ErrOrderNotEditable      = errors.New("only placed orders can be updated")
	ErrInvalidCredentials    = errors.New("username or password are wrong")
	ErrWrongOldPassword      = errors.New("the old password does not match the user password")
	ErrUploadTooBig          = errors.New("file too big")
	ErrUploadTypeNotAllowed  = errors.New("file type not allowed")
	ErrUploadCapacity        = errors.New("no more storage capacity to save new files")
	ErrUploadsDisabled       = errors.New("file storage is not configured")
)
