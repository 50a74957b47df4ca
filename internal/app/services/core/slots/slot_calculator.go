package slots

import (
	"time"

	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/responses"
)

// Generate lists the free 30-minute consultation slots for the next seven
// days as a pure function of the clock and the doctor's booked times.
//
// Day 0 starts at the next half-hour boundary after now plus a one hour
// lead-time buffer, never before opening. Once the clinic has closed for the
// day the window begins tomorrow. All other days run opening to closing.
func Generate(now time.Time, booked map[string][]string) []responses.DaySlots {
	startDay := now
	if now.Hour() >= constvars.ClinicClosingHour {
		startDay = now.AddDate(0, 0, 1)
	}

	window := make([]responses.DaySlots, 0, constvars.SlotWindowDays)
	for i := 0; i < constvars.SlotWindowDays; i++ {
		day := startDay.AddDate(0, 0, i)
		dateKey := day.Format(constvars.SlotDateLayout)

		cursor := time.Date(day.Year(), day.Month(), day.Day(), constvars.ClinicOpeningHour, 0, 0, 0, day.Location())
		if i == 0 && sameDate(day, now) {
			earliest := nextBoundary(now.Add(time.Hour))
			if earliest.After(cursor) {
				cursor = earliest
			}
		}
		end := time.Date(day.Year(), day.Month(), day.Day(), constvars.ClinicClosingHour, 0, 0, 0, day.Location())

		taken := make(map[string]bool, len(booked[dateKey]))
		for _, t := range booked[dateKey] {
			taken[t] = true
		}

		daySlots := responses.DaySlots{Date: dateKey, Slots: []responses.Slot{}}
		for cursor.Before(end) {
			slotTime := cursor.Format(constvars.SlotTimeLayout)
			if !taken[slotTime] {
				daySlots.Slots = append(daySlots.Slots, responses.Slot{
					Time:        slotTime,
					DisplayTime: cursor.Format("03:04 PM"),
				})
			}
			cursor = cursor.Add(time.Duration(constvars.SlotStepInMinutes) * time.Minute)
		}
		window = append(window, daySlots)
	}
	return window
}

// nextBoundary rounds t up to the next half-hour mark.
func nextBoundary(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	minute := t.Minute()
	switch {
	case minute == 0 || minute == 30:
		return t
	case minute < 30:
		return t.Add(time.Duration(30-minute) * time.Minute)
	default:
		return t.Add(time.Duration(60-minute) * time.Minute)
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
