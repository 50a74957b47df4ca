package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotDateParsing(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		parsed, err := ParseSlotDate("07_09_2026")
		assert.NoError(t, err)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, time.September, parsed.Month())
		assert.Equal(t, 7, parsed.Day())
	})

	t.Run("Invalid date", func(t *testing.T) {
		_, err := ParseSlotDate("2026-09-07")
		assert.Error(t, err)
	})

	t.Run("Format roundtrip", func(t *testing.T) {
		parsed, err := ParseSlotDate("07_09_2026")
		assert.NoError(t, err)
		assert.Equal(t, "07_09_2026", FormatSlotDate(parsed))
	})
}

func TestCombineSlotDateTime(t *testing.T) {
	t.Run("Combines date and time in location", func(t *testing.T) {
		loc := time.FixedZone("IST", 5*3600+1800)

		combined, err := CombineSlotDateTime("07_09_2026", "14:30", loc)
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.September, 7, 14, 30, 0, 0, loc), combined)
	})

	t.Run("Bad time component", func(t *testing.T) {
		_, err := CombineSlotDateTime("07_09_2026", "2:30 PM", time.UTC)
		assert.Error(t, err)
	})
}

func TestDisplaySlotDate(t *testing.T) {
	assert.Equal(t, "07 Sep 2026", DisplaySlotDate("07_09_2026"))
	// Unparseable input is shown as-is.
	assert.Equal(t, "garbage", DisplaySlotDate("garbage"))
}

func TestEndOfSlot(t *testing.T) {
	start := time.Date(2026, time.September, 7, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.September, 7, 15, 0, 0, 0, time.UTC), EndOfSlot(start))
}
