package model

import (
	"fmt"
	"time"
)

// Category identifies one of the three preset session kinds.
type Category string

const (
	CategoryStudy      Category = "study"
	CategoryShortBreak Category = "short"
	CategoryLongBreak  Category = "long"
)

// Duration returns the fixed countdown length for the category.
// The mapping is total: every valid Category has an entry, and the
// presets are not user-configurable.
func (category Category) Duration() time.Duration {
	switch category {
	case CategoryStudy:
		return 25 * time.Minute
	case CategoryShortBreak:
		return 5 * time.Minute
	case CategoryLongBreak:
		return 15 * time.Minute
	}
	return 0
}

// Valid reports whether the category is one of the three presets.
func (category Category) Valid() bool {
	switch category {
	case CategoryStudy, CategoryShortBreak, CategoryLongBreak:
		return true
	}
	return false
}

// Label returns the human-readable name shown in the UI.
func (category Category) Label() string {
	switch category {
	case CategoryStudy:
		return "Study"
	case CategoryShortBreak:
		return "Short break"
	case CategoryLongBreak:
		return "Long break"
	}
	return string(category)
}

// Categories lists the presets in display order.
func Categories() []Category {
	return []Category{CategoryStudy, CategoryShortBreak, CategoryLongBreak}
}

// ParseCategory converts external input into a Category, rejecting
// anything outside the closed set.
func ParseCategory(value string) (Category, error) {
	category := Category(value)
	if !category.Valid() {
		return "", fmt.Errorf("unknown category %q", value)
	}
	return category, nil
}
