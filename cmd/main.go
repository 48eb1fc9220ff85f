package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"

	appointmentActionHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/appointment_action"
	cancelAppointmentHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/cancel_appointment"
	checkSlotHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/check_slot"
	exportAppointmentsHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/export_appointments"
	getAppointmentHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/get_availability"
	healthHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/health"
	humanRequestHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/human_request"
	listAppointmentsHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/list_appointments"
	sendSMSHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/send_sms"
	updateAppointmentHandler "github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers/update_appointment"
	"github.com/m04kA/SMC-AutoservisBooking/internal/api/middleware"
	"github.com/m04kA/SMC-AutoservisBooking/internal/config"
	calendarClient "github.com/m04kA/SMC-AutoservisBooking/internal/integrations/googlecalendar"
	twilioClient "github.com/m04kA/SMC-AutoservisBooking/internal/integrations/twilio"
	bookingsService "github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/logger"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/metrics"
)

const (
	serviceName    = "SMC-AutoservisBooking"
	serviceVersion = "2.0.0"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting %s...", serviceName)
	log.Info("Configuration loaded from %s", configPath)

	business, err := cfg.BusinessHours()
	if err != nil {
		log.Fatal("Invalid business hours: %v", err)
	}
	log.Info("Business hours: %02d:00-%02d:00 %s, slot %d min, buffer %d min",
		business.StartHour, business.EndHour, business.Location, business.AppointmentDurationMinutes, business.BufferMinutes)

	// Инициализируем метрики (если включены)
	// Интерфейсы остаются nil, если метрики выключены
	var (
		metricsCollector *metrics.Metrics
		gatewayMetrics   calendarClient.Metrics
		bookingMetrics   bookingsService.Metrics
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		gatewayMetrics = metricsCollector
		bookingMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем интеграционных клиентов
	calendar := calendarClient.NewClient(calendarClient.Config{
		CalendarID:      cfg.Calendar.CalendarID,
		CredentialsJSON: cfg.Calendar.CredentialsJSON,
		CredentialsFile: cfg.Calendar.CredentialsFile,
		Location:        business.Location,
	}, gatewayMetrics, log)

	// Без календаря сервис стартует: записи отвечают 503 с телефоном, SMS работают
	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.CalendarTimeout())
	if err := calendar.EnsureReady(initCtx); err != nil {
		log.Warn("Google Calendar is not ready, booking will be unavailable: %v", err)
	}
	cancelInit()

	sms := twilioClient.NewClient(twilioClient.Config{
		AccountSID:   cfg.SMS.AccountSID,
		AuthToken:    cfg.SMS.AuthToken,
		FromNumber:   cfg.SMS.FromNumber,
		NotifyNumber: cfg.SMS.NotifyNumber,
	}, cfg.SMSTimeout(), log)
	if !sms.Configured() {
		log.Warn("Twilio credentials not found, SMS functionality will be disabled")
	}

	log.Info("Integration clients initialized (calendar=%s timeout=%s, sms configured=%t timeout=%s)",
		calendar.CalendarID(), cfg.CalendarTimeout(), sms.Configured(), cfg.SMSTimeout())

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		calendar,
		bookingsService.Config{
			Business:       business,
			SearchDays:     cfg.Business.SearchDays,
			ListDays:       cfg.Business.ListDays,
			GatewayTimeout: cfg.CalendarTimeout(),
			Reminders:      cfg.Reminders(),
		},
		bookingMetrics,
		log,
	)

	// Инициализируем handlers
	fallbackPhone := cfg.Business.ContactPhone

	appointmentAction := appointmentActionHandler.NewHandler(bookingSvc, fallbackPhone, log)
	getAppointment := getAppointmentHandler.NewHandler(bookingSvc, fallbackPhone, log)
	updateAppointment := updateAppointmentHandler.NewHandler(bookingSvc, fallbackPhone, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(bookingSvc, fallbackPhone, log)
	getAvailability := getAvailabilityHandler.NewHandler(bookingSvc, fallbackPhone, log)
	checkSlot := checkSlotHandler.NewHandler(bookingSvc, fallbackPhone, log)
	listAppointments := listAppointmentsHandler.NewHandler(bookingSvc, fallbackPhone, log)
	exportAppointments := exportAppointmentsHandler.NewHandler(bookingSvc, fallbackPhone, log)
	sendSMS := sendSMSHandler.NewHandler(sms, log)
	humanRequest := humanRequestHandler.NewHandler(sms, log)
	health := healthHandler.NewHandler(calendar, sms, serviceName, serviceVersion)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// SERVICE ROUTES
	// ============================================================

	r.HandleFunc("/", health.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", health.Health).Methods(http.MethodGet)

	// ============================================================
	// PUBLIC ROUTES (голосовой ассистент, ограничение частоты по IP)
	// ============================================================

	public := r.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy, log)
		public.Use(limiter.Middleware())
		log.Info("Rate limit enabled: %.2f rps, burst %d, trust proxy %t",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
	}

	// --- Записи ---
	// Единая точка: check_availability, find_next_available, find_alternative, book
	public.HandleFunc("/booking/appointment", appointmentAction.Handle).Methods(http.MethodPost)

	// Получение, изменение и отмена записи
	public.HandleFunc("/booking/appointment/{id}", getAppointment.Handle).Methods(http.MethodGet)
	public.HandleFunc("/booking/appointment/{id}", updateAppointment.Handle).Methods(http.MethodPut)
	public.HandleFunc("/booking/appointment/{id}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// Свободное время
	public.HandleFunc("/booking/availability", getAvailability.Handle).Methods(http.MethodGet)
	public.HandleFunc("/booking/check-slot", checkSlot.Handle).Methods(http.MethodPost)

	// Список записей и выгрузка в iCalendar
	public.HandleFunc("/booking/appointments", listAppointments.Handle).Methods(http.MethodGet)
	public.HandleFunc("/booking/appointments.ics", exportAppointments.Handle).Methods(http.MethodGet)

	// --- SMS ---
	public.HandleFunc("/webhook/sms", sendSMS.Handle).Methods(http.MethodPost)
	public.HandleFunc("/webhook/human-request", humanRequest.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
