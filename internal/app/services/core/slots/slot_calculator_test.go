package slots

import (
	"testing"
	"time"

	"medilink-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	loc := time.UTC

	t.Run("Window Spans Seven Days", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)

		window := Generate(now, nil)

		assert.Len(t, window, constvars.SlotWindowDays)
		assert.Equal(t, "07_09_2026", window[0].Date)
		assert.Equal(t, "13_09_2026", window[6].Date)
	})

	t.Run("Morning Request Starts At Opening", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)

		window := Generate(now, nil)

		assert.Equal(t, "10:00", window[0].Slots[0].Time)
		assert.Equal(t, "10:00 AM", window[0].Slots[0].DisplayTime)
	})

	t.Run("Midday Request Applies Lead Time Buffer", func(t *testing.T) {
		// 13:10 + 1h = 14:10, rounded up to 14:30.
		now := time.Date(2026, 9, 7, 13, 10, 0, 0, loc)

		window := Generate(now, nil)

		assert.Equal(t, "14:30", window[0].Slots[0].Time)
	})

	t.Run("Exact Boundary Is Not Rounded", func(t *testing.T) {
		// 13:30 + 1h = 14:30, already on a boundary.
		now := time.Date(2026, 9, 7, 13, 30, 0, 0, loc)

		window := Generate(now, nil)

		assert.Equal(t, "14:30", window[0].Slots[0].Time)
	})

	t.Run("Last Slot Ends Before Closing", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)

		window := Generate(now, nil)

		last := window[0].Slots[len(window[0].Slots)-1]
		assert.Equal(t, "20:30", last.Time)
	})

	t.Run("After Closing Starts Tomorrow", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 21, 0, 0, 0, loc)

		window := Generate(now, nil)

		assert.Len(t, window, constvars.SlotWindowDays)
		assert.Equal(t, "08_09_2026", window[0].Date)
		assert.Equal(t, "10:00", window[0].Slots[0].Time)
	})

	t.Run("Booked Times Are Excluded", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)
		booked := map[string][]string{
			"07_09_2026": {"10:00", "15:30"},
		}

		window := Generate(now, booked)

		times := make(map[string]bool)
		for _, slot := range window[0].Slots {
			times[slot.Time] = true
		}
		assert.False(t, times["10:00"])
		assert.False(t, times["15:30"])
		assert.True(t, times["10:30"])
	})

	t.Run("Bookings On Another Day Do Not Leak", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)
		booked := map[string][]string{
			"08_09_2026": {"10:00"},
		}

		window := Generate(now, booked)

		assert.Equal(t, "10:00", window[0].Slots[0].Time)
		assert.Equal(t, "10:30", window[1].Slots[0].Time)
	})

	t.Run("Full Day Yields Empty Slot List", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)
		var full []string
		for h := constvars.ClinicOpeningHour; h < constvars.ClinicClosingHour; h++ {
			full = append(full, time.Date(2026, 9, 7, h, 0, 0, 0, loc).Format("15:04"))
			full = append(full, time.Date(2026, 9, 7, h, 30, 0, 0, loc).Format("15:04"))
		}
		booked := map[string][]string{"07_09_2026": full}

		window := Generate(now, booked)

		assert.Empty(t, window[0].Slots)
		assert.NotNil(t, window[0].Slots)
	})

	t.Run("Afternoon Display Time Uses PM", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 8, 0, 0, 0, loc)

		window := Generate(now, nil)

		var display string
		for _, slot := range window[0].Slots {
			if slot.Time == "15:30" {
				display = slot.DisplayTime
			}
		}
		assert.Equal(t, "03:30 PM", display)
	})
}
