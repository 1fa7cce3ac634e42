package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Measurement is one body measurement record. All fields are optional;
// users log whichever they track.
type Measurement struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	Weight *float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Chest  *float64 `bson:"chest,omitempty" json:"chest,omitempty"`   // cm
	Waist  *float64 `bson:"waist,omitempty" json:"waist,omitempty"`   // cm
	Hips   *float64 `bson:"hips,omitempty" json:"hips,omitempty"`     // cm

	TakenAt time.Time `bson:"takenAt" json:"takenAt"`
}
