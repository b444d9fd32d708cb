package auth

import (
	"context"
	"fmt"
	"sync"
	"theramind-service/internal/app/config"
	"theramind-service/internal/app/contracts"
	"theramind-service/internal/app/models"
	"theramind-service/internal/pkg/constvars"
	"theramind-service/internal/pkg/dto/requests"
	"theramind-service/internal/pkg/dto/responses"
	"theramind-service/internal/pkg/exceptions"
	"theramind-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type authUsecase struct {
	IdentityClient   contracts.IdentityClient
	SessionService   contracts.SessionService
	PatientRepository contracts.PatientRepository
	DoctorRepository  contracts.DoctorRepository
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	identityClient contracts.IdentityClient,
	sessionService contracts.SessionService,
	patientMongoRepository contracts.PatientRepository,
	doctorMongoRepository contracts.DoctorRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			IdentityClient:    identityClient,
			SessionService:    sessionService,
			PatientRepository: patientMongoRepository,
			DoctorRepository:  doctorMongoRepository,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
	})
	return authUsecaseInstance
}

// Login exchanges an authorization code for a verified profile, makes sure we
// hold a local record for the caller, and mints a JWT-wrapped session. A
// doctor login requires an existing doctor document; patients are upserted on
// the fly.
func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginRequest) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("role", request.Role),
	)

	profile, err := uc.IdentityClient.ExchangeLoginCode(ctx, request.Code)
	if err != nil {
		uc.Log.Error("authUsecase.Login error exchanging authorization code",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	switch request.Role {
	case constvars.RoleTypeDoctor:
		doctor, err := uc.DoctorRepository.FindByEmail(ctx, profile.Email)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("no doctor registered for email %s", profile.Email))
		}
	case constvars.RoleTypePatient:
		err = uc.PatientRepository.UpsertPatient(ctx, &models.Patient{
			Email:    profile.Email,
			Name:     profile.Name,
			Verified: profile.EmailVerified,
		})
		if err != nil {
			return nil, err
		}
	}

	session := &models.Session{
		SessionID: utils.GenerateSessionID(),
		Email:     profile.Email,
		Name:      profile.Name,
		Role:      request.Role,
	}
	err = uc.SessionService.SaveSession(ctx, session)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)

	return &responses.Login{
		Token: token,
		Email: session.Email,
		Name:  session.Name,
		Role:  session.Role,
	}, nil
}

// AttachCalendarConsent exchanges an incremental-consent code for a
// calendar-scoped token pair and stores it on the caller's session.
func (uc *authUsecase) AttachCalendarConsent(ctx context.Context, sessionData string, request *requests.CalendarConsentRequest) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.AttachCalendarConsent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return err
	}

	grant, err := uc.IdentityClient.ExchangeConsentCode(ctx, request.ConsentCode)
	if err != nil {
		return err
	}

	session.Calendar = &models.CalendarToken{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(time.Duration(grant.ExpiresIn) * time.Second),
	}
	err = uc.SessionService.SaveSession(ctx, session)
	if err != nil {
		return err
	}

	uc.Log.Info("authUsecase.AttachCalendarConsent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)
	return nil
}

func (uc *authUsecase) Logout(ctx context.Context, sessionData string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return err
	}
	return uc.SessionService.DeleteSession(ctx, session.SessionID)
}
