package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

const defaultContactPhone = "+421910223761"

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Business  BusinessConfig  `toml:"business"`
	Calendar  CalendarConfig  `toml:"calendar"`
	SMS       SMSConfig       `toml:"sms"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig рабочее время автосервиса
type BusinessConfig struct {
	Timezone                   string   `toml:"timezone"`
	StartHour                  int      `toml:"start_hour"`
	EndHour                    int      `toml:"end_hour"`
	AppointmentDurationMinutes int      `toml:"appointment_duration_minutes"`
	BufferMinutes              *int     `toml:"buffer_minutes"`
	WorkingDays                []string `toml:"working_days"`
	SearchDays                 int      `toml:"search_days"`
	ListDays                   int      `toml:"list_days"`
	ContactPhone               string   `toml:"contact_phone"`
}

// ReminderConfig напоминание события
type ReminderConfig struct {
	Method  string `toml:"method"`
	Minutes int    `toml:"minutes"`
}

// CalendarConfig параметры Google Calendar
type CalendarConfig struct {
	CalendarID      string           `toml:"calendar_id"`
	CredentialsJSON string           `toml:"credentials_json"`
	CredentialsFile string           `toml:"credentials_file"`
	Timeout         int              `toml:"timeout"`
	Reminders       []ReminderConfig `toml:"reminders"`
}

// SMSConfig параметры Twilio
type SMSConfig struct {
	AccountSID   string `toml:"account_sid"`
	AuthToken    string `toml:"auth_token"`
	FromNumber   string `toml:"from_number"`
	NotifyNumber string `toml:"notify_number"`
	Timeout      int    `toml:"timeout"`
}

// RateLimitConfig ограничение запросов с одного IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TrustProxy        bool    `toml:"trust_proxy"` // брать IP из X-Forwarded-For
}

// Load загружает конфигурацию из TOML файла и переменных окружения
// Переменные окружения приоритетнее файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.HTTPPort = port
		}
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); v != "" {
		c.Calendar.CredentialsJSON = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY_PATH"); v != "" {
		c.Calendar.CredentialsFile = v
	}
	if v := os.Getenv("GOOGLE_CALENDAR_ID"); v != "" {
		c.Calendar.CalendarID = v
	}

	// TWILIO_ACTUAL_ACCOUNT_SID приоритетнее TWILIO_ACCOUNT_SID
	if v := os.Getenv("TWILIO_ACTUAL_ACCOUNT_SID"); v != "" {
		c.SMS.AccountSID = v
	} else if v := os.Getenv("TWILIO_ACCOUNT_SID"); v != "" {
		c.SMS.AccountSID = v
	}
	if v := os.Getenv("TWILIO_AUTH_TOKEN"); v != "" {
		c.SMS.AuthToken = v
	}
	if v := os.Getenv("TWILIO_PHONE_NUMBER"); v != "" {
		c.SMS.FromNumber = v
	}
	if v := os.Getenv("AUTOSERVIS_PHONE_NUMBER"); v != "" {
		c.SMS.NotifyNumber = v
		c.Business.ContactPhone = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 3000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "autoservis_booking"
	}

	b := &c.Business
	if b.Timezone == "" {
		b.Timezone = domain.DefaultTimezone
	}
	if b.StartHour == 0 && b.EndHour == 0 {
		b.StartHour = domain.DefaultStartHour
		b.EndHour = domain.DefaultEndHour
	}
	if b.AppointmentDurationMinutes == 0 {
		b.AppointmentDurationMinutes = domain.DefaultAppointmentDurationMinutes
	}
	// 0 - допустимое значение буфера, поэтому отличаем его от отсутствия ключа
	if b.BufferMinutes == nil {
		buffer := domain.DefaultBufferMinutes
		b.BufferMinutes = &buffer
	}
	if len(b.WorkingDays) == 0 {
		for _, d := range domain.DefaultWorkingDays() {
			b.WorkingDays = append(b.WorkingDays, strings.ToLower(d.String()))
		}
	}
	if b.SearchDays == 0 {
		b.SearchDays = domain.DefaultSearchDays
	}
	if b.ListDays == 0 {
		b.ListDays = domain.DefaultListDays
	}
	if b.ContactPhone == "" {
		b.ContactPhone = defaultContactPhone
	}

	if c.Calendar.CalendarID == "" {
		c.Calendar.CalendarID = "primary"
	}
	if c.Calendar.Timeout == 0 {
		c.Calendar.Timeout = 10
	}
	if c.Calendar.Reminders == nil {
		c.Calendar.Reminders = []ReminderConfig{
			{Method: "email", Minutes: 24 * 60},
			{Method: "popup", Minutes: 60},
		}
	}

	if c.SMS.NotifyNumber == "" {
		c.SMS.NotifyNumber = c.Business.ContactPhone
	}
	if c.SMS.Timeout == 0 {
		c.SMS.Timeout = 10
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Business.SearchDays < 1 || c.Business.SearchDays > domain.MaxSearchDays {
		return fmt.Errorf("%w: search_days must be within 1..%d", ErrInvalidConfig, domain.MaxSearchDays)
	}
	for _, r := range c.Calendar.Reminders {
		if r.Method != "email" && r.Method != "popup" {
			return fmt.Errorf("%w: unknown reminder method %q", ErrInvalidConfig, r.Method)
		}
		if r.Minutes < 0 {
			return fmt.Errorf("%w: reminder minutes must not be negative", ErrInvalidConfig)
		}
	}

	business, err := c.BusinessHours()
	if err != nil {
		return err
	}
	if err := business.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// BusinessHours конвертирует секцию business в доменную конфигурацию
func (c *Config) BusinessHours() (domain.BusinessHours, error) {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("%w: unknown timezone %q: %v", ErrInvalidConfig, c.Business.Timezone, err)
	}

	days := make([]time.Weekday, 0, len(c.Business.WorkingDays))
	for _, name := range c.Business.WorkingDays {
		day, err := parseWeekday(name)
		if err != nil {
			return domain.BusinessHours{}, err
		}
		days = append(days, day)
	}

	buffer := domain.DefaultBufferMinutes
	if c.Business.BufferMinutes != nil {
		buffer = *c.Business.BufferMinutes
	}

	return domain.BusinessHours{
		Location:                   loc,
		StartHour:                  c.Business.StartHour,
		EndHour:                    c.Business.EndHour,
		AppointmentDurationMinutes: c.Business.AppointmentDurationMinutes,
		BufferMinutes:              buffer,
		WorkingDays:                days,
	}, nil
}

// Reminders напоминания событий в доменном виде
func (c *Config) Reminders() []domain.Reminder {
	result := make([]domain.Reminder, len(c.Calendar.Reminders))
	for i, r := range c.Calendar.Reminders {
		result[i] = domain.Reminder{Method: r.Method, Minutes: r.Minutes}
	}
	return result
}

// CalendarTimeout таймаут одного вызова календаря
func (c *Config) CalendarTimeout() time.Duration {
	return time.Duration(c.Calendar.Timeout) * time.Second
}

// SMSTimeout таймаут одного запроса к Twilio
func (c *Config) SMSTimeout() time.Duration {
	return time.Duration(c.SMS.Timeout) * time.Second
}

func parseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	default:
		return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
	}
}
