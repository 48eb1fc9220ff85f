package twilio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	twiliogo "github.com/twilio/twilio-go"
	twclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MessageCreator часть Twilio REST API, которой пользуется клиент
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// Config параметры доступа к Twilio
type Config struct {
	AccountSID   string
	AuthToken    string
	FromNumber   string
	NotifyNumber string // телефон автосервиса для уведомлений
}

// Client клиент для отправки SMS через Twilio
type Client struct {
	cfg     Config
	api     MessageCreator
	timeout time.Duration
	log     Logger
}

// NewClient создает новый экземпляр клиента Twilio
func NewClient(cfg Config, timeout time.Duration, log Logger) *Client {
	rest := twiliogo.NewRestClientWithParams(twiliogo.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return NewClientWithAPI(cfg, rest.Api, timeout, log)
}

// NewClientWithAPI создает клиента поверх готовой реализации Messages API
func NewClientWithAPI(cfg Config, api MessageCreator, timeout time.Duration, log Logger) *Client {
	return &Client{
		cfg:     cfg,
		api:     api,
		timeout: timeout,
		log:     log,
	}
}

// Configured true, если заданы учетные данные и номер отправителя
func (c *Client) Configured() bool {
	return c.cfg.AccountSID != "" && c.cfg.AuthToken != "" && c.cfg.FromNumber != ""
}

// NotifyNumber телефон автосервиса
func (c *Client) NotifyNumber() string {
	return c.cfg.NotifyNumber
}

type createResult struct {
	msg *openapi.ApiV2010Message
	err error
}

// SendSMS отправляет SMS на номер to
// SDK не принимает context, поэтому ожидание ограничено ctx и таймаутом клиента
func (c *Client) SendSMS(ctx context.Context, to, body string) (*Message, error) {
	if !c.Configured() {
		c.log.Warn("SMS not sent to %s: Twilio is not configured", to)
		return nil, ErrNotConfigured
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(c.cfg.FromNumber)
	params.SetBody(body)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	done := make(chan createResult, 1)
	go func() {
		msg, err := c.api.CreateMessage(params)
		done <- createResult{msg: msg, err: err}
	}()

	var res createResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		return nil, mapError(res.err)
	}
	if res.msg == nil || res.msg.Sid == nil {
		return nil, fmt.Errorf("%w: message without sid", ErrInvalidResponse)
	}

	msg := fromAPIMessage(res.msg)
	c.log.Info("SMS sent to %s, sid=%s, status=%s", to, msg.SID, msg.Status)
	return msg, nil
}

// Notify отправляет SMS на телефон автосервиса
func (c *Client) Notify(ctx context.Context, body string) (*Message, error) {
	if c.cfg.NotifyNumber == "" {
		return nil, fmt.Errorf("%w: notify number is empty", ErrNotConfigured)
	}
	return c.SendSMS(ctx, c.cfg.NotifyNumber, body)
}

// mapError переводит ошибки SDK в ошибки пакета
func mapError(err error) error {
	var restErr *twclient.TwilioRestError
	if !errors.As(err, &restErr) {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	if restErr.Status >= http.StatusBadRequest && restErr.Status < http.StatusInternalServerError {
		return fmt.Errorf("%w: code %d: %s", ErrRejected, restErr.Code, restErr.Message)
	}
	return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, restErr.Status, restErr.Message)
}
