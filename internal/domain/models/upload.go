package models

import "time"

// Upload targets.
const (
	UploadRelatedToProduct = "product"
	UploadRelatedToUser    = "user"
)

// Upload is a stored file. The row is created before the object is pushed to
// S3; on a failed push the row is removed again.
type Upload struct {
	ID         string
	RelatedTo  string
	Name       string
	Type       string // mime type
	Size       int64
	S3Bucket   string
	S3Key      string
	S3Location string
	S3ETag     string
	ProductID  *string
	CreatedBy  *string
	CreatedOn  time.Time
}
