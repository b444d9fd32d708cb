package middlewares

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
	"theramind-service/internal/pkg/utils"
)

// Authenticate resolves the bearer token to its Redis-backed session and puts
// the raw session JSON on the request context. Usecases parse it themselves;
// the middleware never interprets roles.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(fmt.Errorf("no authorization header")))
			return
		}

		token := strings.TrimPrefix(authHeader, constvars.AuthBearerPrefix)
		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		sessionData, err := m.SessionService.GetSessionData(r.Context(), sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, sessionData)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
