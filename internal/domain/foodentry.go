package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodEntry is a single logged food item, created manually or from a
// scanned nutrition label.
type FoodEntry struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	Name        string `bson:"name" json:"name"`
	Calories    int    `bson:"calories" json:"calories"`
	Protein     int    `bson:"protein" json:"protein"`
	Carbs       int    `bson:"carbs" json:"carbs"`
	Fat         int    `bson:"fat" json:"fat"`
	ServingSize string `bson:"servingSize,omitempty" json:"servingSize,omitempty"`

	// Date optionally groups the entry under a calendar day
	// ("2006-01-02"); MealType tags it as breakfast/lunch/etc.
	Date     string        `bson:"date,omitempty" json:"date,omitempty"`
	MealType MealTimeOfDay `bson:"mealType,omitempty" json:"mealType,omitempty"`

	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// DedupeFoodEntries collapses a most-recent-first food log into a
// unique-by-name list, keeping the first occurrence of each name and
// preserving input order. It backs the "saved foods" quick-select and
// never mutates the log itself.
func DedupeFoodEntries(entries []FoodEntry) []FoodEntry {
	seen := make(map[string]struct{}, len(entries))
	unique := make([]FoodEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Name]; ok {
			continue
		}
		seen[e.Name] = struct{}{}
		unique = append(unique, e)
	}
	return unique
}
