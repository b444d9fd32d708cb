package doctors

import (
	"context"
	"fmt"
	"sync"
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

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	SessionService   contracts.SessionService
	Log              *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorMongoRepository contracts.DoctorRepository,
	sessionService contracts.SessionService,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = &doctorUsecase{
			DoctorRepository: doctorMongoRepository,
			SessionService:   sessionService,
			Log:              logger,
		}
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) FindAll(ctx context.Context) ([]responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, err := uc.DoctorRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("doctorUsecase.FindAll error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Doctor, len(doctors))
	for i, doctor := range doctors {
		response[i] = buildDoctorResponse(&doctor)
	}
	return response, nil
}

func (uc *doctorUsecase) FindByEmail(ctx context.Context, email string) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindByEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorEmailKey, email),
	)

	doctor, err := uc.DoctorRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("no doctor with email %s", email))
	}

	response := buildDoctorResponse(doctor)
	return &response, nil
}

func (uc *doctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctorRequest) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorEmailKey, request.Email),
	)

	existing, err := uc.DoctorRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrDoctorAlreadyExist(fmt.Errorf("doctor %s already exists", request.Email))
	}

	doctor, err := uc.DoctorRepository.CreateDoctor(ctx, &models.Doctor{
		Email:     request.Email,
		Name:      request.Name,
		Timeslots: []time.Time{},
	})
	if err != nil {
		uc.Log.Error("doctorUsecase.CreateDoctor error inserting doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := buildDoctorResponse(doctor)
	return &response, nil
}

// SetTimeslots replaces the caller's published availability. Only a doctor
// session may call it, and only for its own email; past slots are rejected
// before anything is written.
func (uc *doctorUsecase) SetTimeslots(ctx context.Context, sessionData string, request *requests.SetTimeslotsRequest) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.SetTimeslots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := uc.SessionService.ParseSessionData(ctx, sessionData)
	if err != nil {
		return nil, err
	}
	if !session.IsDoctor() {
		return nil, exceptions.ErrNotMatchRoleType(fmt.Errorf("role %s cannot publish timeslots", session.Role))
	}

	doctor, err := uc.DoctorRepository.FindByEmail(ctx, session.Email)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("no doctor with email %s", session.Email))
	}

	now := time.Now().UTC()
	slots := make([]time.Time, 0, len(request.Timeslots))
	for _, raw := range request.Timeslots {
		slot, err := utils.ParseTimeslot(raw)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err)
		}
		if !utils.IsFutureTimeslot(slot, now) {
			return nil, exceptions.ErrTimeslotNotFuture(fmt.Errorf("timeslot %s is not in the future", raw))
		}
		slots = append(slots, slot)
	}
	normalized := utils.NormalizeTimeslots(slots)

	err = uc.DoctorRepository.SetTimeslots(ctx, doctor.Email, normalized)
	if err != nil {
		uc.Log.Error("doctorUsecase.SetTimeslots error updating timeslots",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorEmailKey, doctor.Email),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("doctorUsecase.SetTimeslots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorEmailKey, doctor.Email),
		zap.Int("timeslot_count", len(normalized)),
	)

	doctor.Timeslots = normalized
	response := buildDoctorResponse(doctor)
	return &response, nil
}

func buildDoctorResponse(doctor *models.Doctor) responses.Doctor {
	timeslots := doctor.Timeslots
	if timeslots == nil {
		timeslots = []time.Time{}
	}
	return responses.Doctor{
		Email:     doctor.Email,
		Name:      doctor.Name,
		Timeslots: timeslots,
	}
}
