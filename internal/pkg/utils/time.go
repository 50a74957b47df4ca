package utils

import (
	"time"

	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/exceptions"
)

func ParseSlotDate(value string) (time.Time, error) {
	parsed, err := time.Parse(constvars.SlotDateLayout, value)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseDate(err)
	}
	return parsed, nil
}

func FormatSlotDate(t time.Time) string {
	return t.Format(constvars.SlotDateLayout)
}

func ParseSlotTime(value string) (time.Time, error) {
	parsed, err := time.Parse(constvars.SlotTimeLayout, value)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseTime(err)
	}
	return parsed, nil
}

// CombineSlotDateTime merges a DD_MM_YYYY date and an HH:MM time into a single
// instant in the given location.
func CombineSlotDateTime(slotDate, slotTime string, loc *time.Location) (time.Time, error) {
	date, err := ParseSlotDate(slotDate)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := ParseSlotTime(slotTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// DisplaySlotDate renders a DD_MM_YYYY date the way emails and invoices show it,
// for example "07 Sep 2026".
func DisplaySlotDate(slotDate string) string {
	parsed, err := time.Parse(constvars.SlotDateLayout, slotDate)
	if err != nil {
		return slotDate
	}
	return parsed.Format("02 Jan 2006")
}

func EndOfSlot(start time.Time) time.Time {
	return start.Add(time.Duration(constvars.SlotDurationInMinutes) * time.Minute)
}
