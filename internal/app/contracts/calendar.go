package contracts

import (
	"context"
	"time"
)

type MeetEventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Attendees   []string
}

type CalendarService interface {
	// CreateMeetEvent inserts a calendar event with a Meet conference attached
	// and returns the join link.
	CreateMeetEvent(ctx context.Context, input *MeetEventInput) (string, error)
}
