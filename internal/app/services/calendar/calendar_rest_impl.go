package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"theramind-service/internal/app/config"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/pkg/calendar_dto"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

type calendarRestClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewCalendarRestClient builds the single client every calendar call goes
// through. The limiter throttles outbound requests so a burst of bookings
// cannot trip the provider's quota.
func NewCalendarRestClient(internalConfig *config.InternalConfig) contracts.CalendarClient {
	return &calendarRestClient{
		BaseUrl: internalConfig.Calendar.BaseUrl,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.Calendar.TimeoutInSeconds) * time.Second,
		},
		Limiter: rate.NewLimiter(rate.Limit(internalConfig.Calendar.RequestsPerSecond), internalConfig.Calendar.Burst),
	}
}

func (c *calendarRestClient) CreateEvent(ctx context.Context, accessToken string, event *calendar_dto.Event) (*calendar_dto.Event, error) {
	created := new(calendar_dto.Event)
	err := c.do(ctx, accessToken, constvars.MethodPost, "/events", event, created)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *calendarRestClient) UpdateEventTime(ctx context.Context, accessToken, eventID string, start, end time.Time) (*calendar_dto.Event, error) {
	patch := &calendar_dto.Event{
		Start: calendar_dto.EventTime{DateTime: start},
		End:   calendar_dto.EventTime{DateTime: end},
	}
	updated := new(calendar_dto.Event)
	err := c.do(ctx, accessToken, constvars.MethodPut, "/events/"+eventID, patch, updated)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *calendarRestClient) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	return c.do(ctx, accessToken, constvars.MethodDelete, "/events/"+eventID, nil, nil)
}

func (c *calendarRestClient) do(ctx context.Context, accessToken, method, path string, payload, result interface{}) error {
	err := c.Limiter.Wait(ctx)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}

	var body io.Reader
	if payload != nil {
		requestJSON, err := json.Marshal(payload)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewBuffer(requestJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseUrl+path, body)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthBearerPrefix+accessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusUnauthorized {
		return exceptions.ErrCalendarTokenExpired(fmt.Errorf("calendar provider rejected token for %s %s", method, path))
	}
	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= constvars.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return exceptions.ErrCalendarProvider(fmt.Errorf("calendar provider %s %s: %s", method, path, string(bodyBytes)), resp.StatusCode)
	}

	if result == nil || resp.StatusCode == constvars.StatusNoContent {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(result)
	if err != nil {
		return exceptions.ErrDecodeResponse(err, "calendar")
	}
	return nil
}
