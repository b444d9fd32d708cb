package identity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"theramind-service/internal/app/config"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/responses"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

type identityRestClient struct {
	BaseUrl      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

func NewIdentityRestClient(internalConfig *config.InternalConfig) contracts.IdentityClient {
	return &identityRestClient{
		BaseUrl:      internalConfig.Identity.BaseUrl,
		ClientID:     internalConfig.Identity.ClientID,
		ClientSecret: internalConfig.Identity.ClientSecret,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *identityRestClient) ExchangeLoginCode(ctx context.Context, code string) (*responses.IdentityProfile, error) {
	profile := new(responses.IdentityProfile)
	err := c.post(ctx, "/login/exchange", map[string]string{
		"code":          code,
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
	}, profile)
	if err != nil {
		return nil, err
	}
	if !profile.EmailVerified {
		profile.Email = ""
	}
	return profile, nil
}

func (c *identityRestClient) ExchangeConsentCode(ctx context.Context, consentCode string) (*responses.TokenGrant, error) {
	grant := new(responses.TokenGrant)
	err := c.post(ctx, "/consent/exchange", map[string]string{
		"code":          consentCode,
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
	}, grant)
	if err != nil {
		return nil, err
	}
	return grant, nil
}

func (c *identityRestClient) RefreshCalendarToken(ctx context.Context, refreshToken string) (*responses.TokenGrant, error) {
	grant := new(responses.TokenGrant)
	err := c.post(ctx, "/token/refresh", map[string]string{
		"refresh_token": refreshToken,
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
	}, grant)
	if err != nil {
		return nil, err
	}
	return grant, nil
}

func (c *identityRestClient) post(ctx context.Context, path string, payload map[string]string, result interface{}) error {
	requestJSON, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl+path, bytes.NewBuffer(requestJSON))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusBadRequest || resp.StatusCode == constvars.StatusUnauthorized {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return exceptions.ErrIdentityExchange(fmt.Errorf("identity provider rejected %s: %s", path, string(bodyBytes)))
	}
	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return exceptions.ErrIdentityProvider(fmt.Errorf("identity provider %s: %s", path, string(bodyBytes)), resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(result)
	if err != nil {
		return exceptions.ErrDecodeResponse(err, "identity")
	}
	return nil
}
