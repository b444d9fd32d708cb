package calendar

import (
	"context"
	"fmt"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type tokenSource struct {
	IdentityClient contracts.IdentityClient
	SessionService contracts.SessionService
	Log            *zap.Logger
}

// NewTokenSource resolves calendar access tokens out of the session's stored
// grant, refreshing through the identity provider when needed. Refreshed
// grants are written back to the session so subsequent requests reuse them.
func NewTokenSource(identityClient contracts.IdentityClient, sessionService contracts.SessionService, logger *zap.Logger) contracts.CalendarTokenSource {
	return &tokenSource{
		IdentityClient: identityClient,
		SessionService: sessionService,
		Log:            logger,
	}
}

func (ts *tokenSource) AccessToken(ctx context.Context, session *models.Session) (string, error) {
	if session.Calendar == nil {
		return "", exceptions.ErrCalendarAuthRequired(fmt.Errorf("session %s carries no calendar grant", session.SessionID))
	}
	if session.Calendar.Expired(time.Now().UTC()) {
		return ts.Refresh(ctx, session)
	}
	return session.Calendar.AccessToken, nil
}

func (ts *tokenSource) Refresh(ctx context.Context, session *models.Session) (string, error) {
	if session.Calendar == nil || session.Calendar.RefreshToken == "" {
		return "", exceptions.ErrCalendarAuthRequired(fmt.Errorf("session %s has no refresh token", session.SessionID))
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	ts.Log.Info("tokenSource.Refresh refreshing calendar grant",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)

	grant, err := ts.IdentityClient.RefreshCalendarToken(ctx, session.Calendar.RefreshToken)
	if err != nil {
		return "", err
	}

	session.Calendar.AccessToken = grant.AccessToken
	if grant.RefreshToken != "" {
		session.Calendar.RefreshToken = grant.RefreshToken
	}
	session.Calendar.ExpiresAt = time.Now().UTC().Add(time.Duration(grant.ExpiresIn) * time.Second)

	err = ts.SessionService.SaveSession(ctx, session)
	if err != nil {
		ts.Log.Warn("tokenSource.Refresh could not persist refreshed grant",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return session.Calendar.AccessToken, nil
}
