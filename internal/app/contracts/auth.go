package contracts

import (
	"context"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.LoginRequest) (*responses.Login, error)
	AttachCalendarConsent(ctx context.Context, sessionData string, request *requests.CalendarConsentRequest) error
	Logout(ctx context.Context, sessionData string) error
}
