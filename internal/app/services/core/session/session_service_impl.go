package session

import (
	"context"
	"fmt"
	"sync"
	"theramind-service/internal/app/config"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
)

var (
	sessionServiceInstance contracts.SessionService
	onceSessionService     sync.Once
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewSessionService(redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) contracts.SessionService {
	onceSessionService.Do(func() {
		sessionServiceInstance = &sessionService{
			RedisRepository: redisRepository,
			InternalConfig:  internalConfig,
		}
	})
	return sessionServiceInstance
}

func (svc *sessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	session := new(models.Session)
	err := json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if session.SessionID == "" {
		return nil, exceptions.ErrSessionInvalid(fmt.Errorf("session data has no session id"))
	}
	return session, nil
}

func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	key := fmt.Sprintf(constvars.SessionKeyFormat, sessionID)
	sessionData, err := svc.RedisRepository.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if sessionData == "" {
		return "", exceptions.ErrSessionInvalid(fmt.Errorf("no session stored for id %s", sessionID))
	}
	return sessionData, nil
}

func (svc *sessionService) SaveSession(ctx context.Context, session *models.Session) error {
	expiry := time.Duration(svc.InternalConfig.App.SessionExpiryInHours) * time.Hour
	session.ExpiresAt = time.Now().UTC().Add(expiry)
	key := fmt.Sprintf(constvars.SessionKeyFormat, session.SessionID)
	return svc.RedisRepository.Set(ctx, key, session, expiry)
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(constvars.SessionKeyFormat, sessionID)
	return svc.RedisRepository.Delete(ctx, key)
}
