package booking

import (
	"context"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
)

// callWithCalendarAuth resolves an access token for the session and runs the
// calendar call with it. A 401 from the provider triggers exactly one refresh
// and one retry; a second 401 bubbles up as-is so the client is told to
// re-consent.
func callWithCalendarAuth(
	ctx context.Context,
	tokenSource contracts.CalendarTokenSource,
	session *models.Session,
	call func(accessToken string) error,
) error {
	accessToken, err := tokenSource.AccessToken(ctx, session)
	if err != nil {
		return err
	}

	err = call(accessToken)
	if err == nil || !exceptions.HasStatus(err, constvars.StatusUnauthorized) {
		return err
	}

	accessToken, refreshErr := tokenSource.Refresh(ctx, session)
	if refreshErr != nil {
		return refreshErr
	}
	return call(accessToken)
}
