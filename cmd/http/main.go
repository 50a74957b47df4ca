package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/delivery/http/controllers"
	"medilink-service/internal/app/delivery/http/middlewares"
	"medilink-service/internal/app/delivery/http/routers"
	"medilink-service/internal/app/drivers/database"
	"medilink-service/internal/app/drivers/logger"
	driverMailer "medilink-service/internal/app/drivers/mailer"
	"medilink-service/internal/app/drivers/messaging"
	driverStorage "medilink-service/internal/app/drivers/storage"
	"medilink-service/internal/app/services/core/appointments"
	"medilink-service/internal/app/services/core/doctors"
	"medilink-service/internal/app/services/core/notifications"
	"medilink-service/internal/app/services/core/payments"
	"medilink-service/internal/app/services/core/users"
	"medilink-service/internal/app/services/shared/calendar"
	"medilink-service/internal/app/services/shared/googleauth"
	"medilink-service/internal/app/services/shared/invoice"
	"medilink-service/internal/app/services/shared/locker"
	sharedMailer "medilink-service/internal/app/services/shared/mailer"
	"medilink-service/internal/app/services/shared/payment_gateway"
	sharedRedis "medilink-service/internal/app/services/shared/redis"
	sharedStorage "medilink-service/internal/app/services/shared/storage"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := driverStorage.NewMinio(driverConfig)
	mailDialer := driverMailer.NewGomailDialer(driverConfig)
	chiRouter := chi.NewRouter()
	chiRouter.Use(chimiddleware.RequestSize(int64(internalConfig.App.RequestBodyLimitInMegabyte) << 20))

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	// Shared services
	redisRepository := sharedRedis.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	gatewayService := payment_gateway.NewRazorpayService(internalConfig, zapLogger)
	calendarService := calendar.NewGoogleCalendarService(internalConfig, zapLogger)
	googleVerifier := googleauth.NewGoogleAuthService(internalConfig, zapLogger)
	invoiceRenderer := invoice.NewPDFInvoiceRenderer()
	storageService := sharedStorage.NewMinioStorage(minioClient)
	mailerService := sharedMailer.NewGomailService(mailDialer, driverConfig, internalConfig, zapLogger)

	// Repositories
	userMongoRepository := users.NewUserMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	doctorMongoRepository := doctors.NewDoctorMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(mongoDB, driverConfig.MongoDB.DbName)

	// Messaging
	queueService, err := notifications.NewQueueService(rabbitMQ, zapLogger, 1)
	if err != nil {
		bootLog.Fatalf("Failed to initialize message queues: %v", err)
	}

	// Usecases
	invoiceUrlExpiry := time.Duration(internalConfig.Worker.InvoiceUrlExpiryInHours) * time.Hour
	userUsecase := users.NewUserUsecase(userMongoRepository, googleVerifier, internalConfig, zapLogger)
	doctorUsecase := doctors.NewDoctorUsecase(doctorMongoRepository, userMongoRepository, redisRepository, internalConfig, zapLogger)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentMongoRepository,
		doctorMongoRepository,
		userMongoRepository,
		storageService,
		driverConfig.Minio.BucketName,
		invoiceUrlExpiry,
		zapLogger,
	)
	paymentUsecase := payments.NewPaymentUsecase(appointmentMongoRepository, gatewayService, queueService, internalConfig, zapLogger)

	// Background workers
	fanOutWorker := notifications.NewWorker(
		queueService,
		appointmentMongoRepository,
		calendarService,
		invoiceRenderer,
		storageService,
		mailerService,
		internalConfig,
		driverConfig.Minio.BucketName,
		zapLogger,
	)
	if err := fanOutWorker.Start(context.Background()); err != nil {
		bootLog.Fatalf("Failed to start fan-out worker: %v", err)
	}
	bootstrap.WorkerStop = fanOutWorker.Stop

	reconcileWorker := payments.NewWorker(zapLogger, internalConfig, lockerService, paymentUsecase)
	reconcileWorker.Start(context.Background())
	bootstrap.ReconcilerStop = reconcileWorker.Stop

	// HTTP delivery
	appMiddlewares := middlewares.NewMiddlewares(zapLogger, internalConfig)
	userController := controllers.NewUserController(zapLogger, userUsecase)
	doctorController := controllers.NewDoctorController(zapLogger, doctorUsecase)
	appointmentController := controllers.NewAppointmentController(zapLogger, appointmentUsecase, doctorUsecase)
	paymentController := controllers.NewPaymentController(zapLogger, paymentUsecase)

	routers.SetupRoutes(
		chiRouter,
		zapLogger,
		internalConfig,
		appMiddlewares,
		userController,
		doctorController,
		appointmentController,
		paymentController,
	)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootLog.Fatalf("Server failed to start: %v", err)
		}
	}()
	bootLog.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	bootLog.Println("Waiting for pending requests that were already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootLog.Fatalf("Failed to release resources: %v", err)
	}

	bootLog.Println("Server exiting")
}
