package contracts

import (
	"context"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/calendar_dto"
	"time"
)

// CalendarClient talks to the external calendar/meeting provider. All calls
// carry a bearer token; a 401 surfaces as a calendar-auth error so callers can
// refresh once and retry.
type CalendarClient interface {
	CreateEvent(ctx context.Context, accessToken string, event *calendar_dto.Event) (*calendar_dto.Event, error)
	UpdateEventTime(ctx context.Context, accessToken, eventID string, start, end time.Time) (*calendar_dto.Event, error)
	DeleteEvent(ctx context.Context, accessToken, eventID string) error
}

// CalendarTokenSource resolves a usable calendar access token for a session,
// refreshing against the identity provider when the stored one has expired.
// The refreshed grant is written back to the session store.
type CalendarTokenSource interface {
	AccessToken(ctx context.Context, session *models.Session) (string, error)
	Refresh(ctx context.Context, session *models.Session) (string, error)
}
