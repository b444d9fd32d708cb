package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"theramind-service/internal/app/config"
	"theramind-service/internal/pkg/calendar_dto"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseUrl string) *calendarRestClient {
	cfg := &config.InternalConfig{}
	cfg.Calendar.BaseUrl = baseUrl
	cfg.Calendar.RequestsPerSecond = 100
	cfg.Calendar.Burst = 10
	cfg.Calendar.TimeoutInSeconds = 5
	return NewCalendarRestClient(cfg).(*calendarRestClient)
}

func TestCreateEvent_SendsBearerAndDecodesConference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, constvars.MethodPost, r.Method)
		require.Equal(t, "/events", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get(constvars.HeaderAuthorization))
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"id": "evt-1",
			"conferenceData": {
				"entryPoints": [{"entryPointType": "video", "uri": "https://meet.example.com/evt-1"}]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	event, err := client.CreateEvent(context.Background(), "tok-123", &calendar_dto.Event{
		Summary: "Therapy session",
		Start:   calendar_dto.EventTime{DateTime: time.Now().Add(time.Hour)},
		End:     calendar_dto.EventTime{DateTime: time.Now().Add(90 * time.Minute)},
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, "https://meet.example.com/evt-1", event.MeetingLink())
}

func TestCreateEvent_UnauthorizedSurfacesAsExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.CreateEvent(context.Background(), "stale", &calendar_dto.Event{})
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusUnauthorized))
}

func TestDeleteEvent_ProviderErrorSurfacesAsBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, constvars.MethodDelete, r.Method)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.DeleteEvent(context.Background(), "tok", "evt-9")
	require.Error(t, err)
	assert.True(t, exceptions.HasStatus(err, constvars.StatusBadGateway))
}

func TestDeleteEvent_NoContentIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.DeleteEvent(context.Background(), "tok", "evt-9")
	assert.NoError(t, err)
}
