package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryDurations(t *testing.T) {
	assert.Equal(t, 25*time.Minute, CategoryStudy.Duration())
	assert.Equal(t, 5*time.Minute, CategoryShortBreak.Duration())
	assert.Equal(t, 15*time.Minute, CategoryLongBreak.Duration())
}

func TestCategoryDurationsInSeconds(t *testing.T) {
	assert.Equal(t, 1500, int(CategoryStudy.Duration().Seconds()))
	assert.Equal(t, 300, int(CategoryShortBreak.Duration().Seconds()))
	assert.Equal(t, 900, int(CategoryLongBreak.Duration().Seconds()))
}

func TestParseCategory(t *testing.T) {
	for _, category := range Categories() {
		parsed, err := ParseCategory(string(category))
		require.NoError(t, err)
		assert.Equal(t, category, parsed)
	}
}

func TestParseCategory_RejectsUnknown(t *testing.T) {
	for _, value := range []string{"", "pomodoro", "Study", "break"} {
		_, err := ParseCategory(value)
		assert.Error(t, err, "value %q should be rejected", value)
	}
}

func TestInvalidCategoryHasZeroDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), Category("bogus").Duration())
	assert.False(t, Category("bogus").Valid())
}
