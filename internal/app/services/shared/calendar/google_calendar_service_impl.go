package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var (
	calendarServiceInstance contracts.CalendarService
	onceCalendarService     sync.Once
)

type googleCalendarService struct {
	calendarID  string
	tokenSource oauth2.TokenSource
	Log         *zap.Logger
}

func NewGoogleCalendarService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.CalendarService {
	onceCalendarService.Do(func() {
		oauthConfig := &oauth2.Config{
			ClientID:     internalConfig.Calendar.ClientID,
			ClientSecret: internalConfig.Calendar.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{calendarapi.CalendarEventsScope},
		}
		token := &oauth2.Token{RefreshToken: internalConfig.Calendar.RefreshToken}

		instance := &googleCalendarService{
			calendarID:  internalConfig.Calendar.CalendarID,
			tokenSource: oauthConfig.TokenSource(context.Background(), token),
			Log:         logger,
		}
		calendarServiceInstance = instance
	})
	return calendarServiceInstance
}

func (s *googleCalendarService) CreateMeetEvent(ctx context.Context, input *contracts.MeetEventInput) (string, error) {
	service, err := calendarapi.NewService(ctx, option.WithTokenSource(s.tokenSource))
	if err != nil {
		return "", exceptions.ErrCalendarCreateEvent(err)
	}

	var attendees []*calendarapi.EventAttendee
	for _, email := range input.Attendees {
		attendees = append(attendees, &calendarapi.EventAttendee{Email: email})
	}

	event := &calendarapi.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendarapi.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
		},
		End: &calendarapi.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
		},
		Attendees: attendees,
		ConferenceData: &calendarapi.ConferenceData{
			CreateRequest: &calendarapi.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &calendarapi.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := service.Events.Insert(s.calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		s.Log.Error("googleCalendarService.CreateMeetEvent error inserting event",
			zap.Error(err),
		)
		return "", exceptions.ErrCalendarCreateEvent(err)
	}

	if created.HangoutLink == "" {
		return "", exceptions.ErrCalendarCreateEvent(fmt.Errorf("event %s has no meet link", created.Id))
	}
	return created.HangoutLink, nil
}
