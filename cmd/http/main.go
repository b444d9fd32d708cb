package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"theramind-service/internal/app/config"
	"theramind-service/internal/app/delivery/http/controllers"
	"theramind-service/internal/app/delivery/http/middlewares"
	"theramind-service/internal/app/delivery/http/routers"
	"theramind-service/internal/app/drivers/database"
	"theramind-service/internal/app/drivers/logger"
	drivermailer "theramind-service/internal/app/drivers/mailer"
	"theramind-service/internal/app/drivers/messaging"
	"theramind-service/internal/app/services/calendar"
	"theramind-service/internal/app/services/core/appointments"
	"theramind-service/internal/app/services/core/auth"
	"theramind-service/internal/app/services/core/booking"
	"theramind-service/internal/app/services/core/doctors"
	"theramind-service/internal/app/services/core/patients"
	"theramind-service/internal/app/services/core/session"
	"theramind-service/internal/app/services/identity"
	"theramind-service/internal/app/services/shared/locker"
	"theramind-service/internal/app/services/shared/mailer"
	"theramind-service/internal/app/services/shared/redis"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests to finish before shutting down")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	sessionService := session.NewSessionService(redisRepository, bootstrap.InternalConfig)

	// External providers
	identityClient := identity.NewIdentityRestClient(bootstrap.InternalConfig)
	calendarClient := calendar.NewCalendarRestClient(bootstrap.InternalConfig)
	calendarTokenSource := calendar.NewTokenSource(identityClient, sessionService, bootstrap.Logger)

	// Mailer queue plus its delivery worker
	notificationService, err := mailer.NewNotificationService(bootstrap.RabbitMQ, bootstrap.InternalConfig.Mailer.Queue, bootstrap.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize notification service: %v", err)
	}
	smtpClient := drivermailer.NewSMTPClient(bootstrap.DriverConfig)
	mailerWorker, err := mailer.NewWorker(bootstrap.RabbitMQ, bootstrap.InternalConfig.Mailer.Queue, smtpClient, bootstrap.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize mailer worker: %v", err)
	}
	mailerStop, err := mailerWorker.Start()
	if err != nil {
		log.Fatalf("Failed to start mailer worker: %v", err)
	}
	bootstrap.MailerStop = func() {
		if err := mailerStop(); err != nil {
			bootstrap.Logger.Warn("Error stopping mailer worker")
		}
	}

	// Repositories
	doctorMongoRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Usecases
	doctorUsecase := doctors.NewDoctorUsecase(doctorMongoRepository, sessionService, bootstrap.Logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentMongoRepository, sessionService, bootstrap.Logger)
	bookingUsecase := booking.NewBookingUsecase(
		doctorMongoRepository,
		appointmentMongoRepository,
		sessionService,
		lockerService,
		calendarClient,
		calendarTokenSource,
		notificationService,
		bootstrap.Logger,
	)
	lifecycleUsecase := booking.NewLifecycleUsecase(
		doctorMongoRepository,
		appointmentMongoRepository,
		sessionService,
		lockerService,
		calendarClient,
		calendarTokenSource,
		notificationService,
		bootstrap.Logger,
	)
	authUsecase := auth.NewAuthUsecase(
		identityClient,
		sessionService,
		patientMongoRepository,
		doctorMongoRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Controllers
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, bookingUsecase, lifecycleUsecase, appointmentUsecase)

	// Middlewares and routes
	appMiddlewares := middlewares.NewMiddlewares(sessionService, bootstrap.InternalConfig, bootstrap.Logger)
	bootstrap.Router.Use(appMiddlewares.RequestIDMiddleware)
	bootstrap.Router.Use(appMiddlewares.Logging(bootstrap.Logger))
	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		authController,
		doctorController,
		appointmentController,
	)
}
