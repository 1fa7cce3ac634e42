package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeFoodEntries_FirstSeenWins(t *testing.T) {
	// Input is most-recent-first, so the first Apple is the latest one.
	entries := []FoodEntry{
		{Name: "Apple", Calories: 95},
		{Name: "Banana", Calories: 105},
		{Name: "Apple", Calories: 80},
	}

	unique := DedupeFoodEntries(entries)

	assert.Len(t, unique, 2)
	assert.Equal(t, "Apple", unique[0].Name)
	assert.Equal(t, 95, unique[0].Calories)
	assert.Equal(t, "Banana", unique[1].Name)
}

func TestDedupeFoodEntries_PreservesOrder(t *testing.T) {
	entries := []FoodEntry{
		{Name: "Eggs"},
		{Name: "Toast"},
		{Name: "Eggs"},
		{Name: "Coffee"},
		{Name: "Toast"},
	}

	unique := DedupeFoodEntries(entries)

	names := make([]string, len(unique))
	for i, e := range unique {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"Eggs", "Toast", "Coffee"}, names)
}

func TestDedupeFoodEntries_Empty(t *testing.T) {
	assert.Empty(t, DedupeFoodEntries(nil))
	assert.Empty(t, DedupeFoodEntries([]FoodEntry{}))
}

func TestDedupeFoodEntries_DoesNotMutateInput(t *testing.T) {
	entries := []FoodEntry{{Name: "Apple"}, {Name: "Apple"}}

	DedupeFoodEntries(entries)

	assert.Len(t, entries, 2)
}
