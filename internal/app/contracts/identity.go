package contracts

import (
	"context"
	"theramind-service/internal/pkg/dto/responses"
)

// IdentityClient is the external OAuth-style identity provider. Login codes
// exchange for a verified profile; consent codes exchange for a
// calendar-scoped token pair independent of login identity.
type IdentityClient interface {
	ExchangeLoginCode(ctx context.Context, code string) (*responses.IdentityProfile, error)
	ExchangeConsentCode(ctx context.Context, consentCode string) (*responses.TokenGrant, error)
	RefreshCalendarToken(ctx context.Context, refreshToken string) (*responses.TokenGrant, error)
}
