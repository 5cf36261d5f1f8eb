// File: concierge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concierge/config"
	"concierge/cron"
	"concierge/database"
	appointmentRepo "concierge/database/repository/appointment"
	bookingRepo "concierge/database/repository/booking"
	faqRepo "concierge/database/repository/faq"
	requestRepo "concierge/database/repository/servicerequest"
	sessionRepo "concierge/database/repository/session"
	"concierge/handlers"
	"concierge/middleware"
	"concierge/routes"
	"concierge/services/concierge"
	ai "concierge/services/intelligence"
	"concierge/services/realtime"
	"concierge/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	model, err := ai.NewGeminiModel(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gemini model: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessions := sessionRepo.NewMongoSessionRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	requests := requestRepo.NewMongoServiceRequestRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	faqs := faqRepo.NewMongoFAQRepo()

	// services.
	hub := realtime.NewHub(logger)
	conciergeSvc := &concierge.DefaultService{
		Sessions:     sessions,
		Bookings:     bookings,
		Requests:     requests,
		Appointments: appointments,
		FAQs:         faqs,
		Model:        model,
		Notifier:     hub,
		Logger:       logger,
	}

	// background reminder pipeline.
	cron.InitReminderWorker(conciergeSvc)
	cron.InitReminderScanner(bookings, appointments)

	chatHandler := handlers.NewChatHandler(conciergeSvc, logger)
	bookingHandler := handlers.NewBookingHandler(bookings, logger)
	serviceHandler := handlers.NewServiceRequestHandler(requests, hub, logger)
	staffHandler := handlers.NewStaffHandler(logger)
	socketHandler := handlers.NewSocketHandler(hub, logger)
	voiceHandler := handlers.NewVoiceHandler(conciergeSvc, logger)
	speechHandler := handlers.NewSpeechHandler(conciergeSvc, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Chat endpoints.
		Chat:          chatHandler.Chat,
		History:       chatHandler.History,
		GuestContext:  chatHandler.GuestContext,
		SearchFAQs:    chatHandler.SearchFAQs,
		ProactivePing: chatHandler.ProactivePing,

		// Booking endpoints.
		CreateBooking: bookingHandler.CreateBooking,

		// Service request endpoints.
		CreateServiceRequest: serviceHandler.CreateServiceRequest,
		ListServiceRequests:  serviceHandler.ListServiceRequests,
		UpdateServiceRequest: serviceHandler.UpdateServiceRequest,

		// Voice endpoints.
		VoiceAnswer: voiceHandler.Answer,
		VoiceGather: voiceHandler.Gather,
		Transcribe:  speechHandler.Transcribe,

		// Staff endpoints.
		StaffLogin: staffHandler.Login,

		// Realtime endpoints.
		DashboardSocket: socketHandler.Dashboard,
		GuestSocket:     socketHandler.Guest,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
