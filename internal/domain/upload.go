package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload stores metadata about a scanned nutrition label image,
// linked to the FoodEntry it produced. The image itself resides in S3.
type Upload struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"userId" json:"userId"`
	FoodEntryID *primitive.ObjectID `bson:"foodEntryId,omitempty" json:"foodEntryId,omitempty"`
	S3ObjectKey string              `bson:"s3ObjectKey" json:"-"` // internal bucket key
	FileName    string              `bson:"fileName" json:"fileName"`
	ContentType string              `bson:"contentType" json:"contentType"`
	Size        int64               `bson:"size" json:"size"`
	UploadedAt  time.Time           `bson:"uploadedAt" json:"uploadedAt"`
}
