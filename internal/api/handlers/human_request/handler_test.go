package human_request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AutoservisBooking/internal/integrations/twilio"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/logger"
	"github.com/m04kA/SMC-AutoservisBooking/pkg/ptr"
)

type MockNotifier struct {
	mock.Mock
	configured bool
}

func (m *MockNotifier) Configured() bool {
	return m.configured
}

func (m *MockNotifier) Notify(ctx context.Context, body string) (*twilio.Message, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*twilio.Message), args.Error(1)
}

func serve(n Notifier, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(n, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/webhook/human-request", strings.NewReader(body)))
	return rec
}

func TestSMSBody(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		body := (&HumanRequest{CustomerName: "Ján", CustomerPhone: "+421900000001"}).SMSBody()
		assert.Contains(t, body, "Zákazník: Ján")
		assert.Contains(t, body, "Telefón: +421900000001")
		assert.Contains(t, body, "Dôvod: "+defaultReason)
		assert.Contains(t, body, "Naliehavosť: "+defaultUrgency)
	})

	t.Run("explicit values", func(t *testing.T) {
		body := (&HumanRequest{
			CustomerName:  "Ján",
			CustomerPhone: "+421900000001",
			Reason:        ptr.Ptr("Reklamácia"),
			Urgency:       ptr.Ptr("vysoká"),
		}).SMSBody()
		assert.Contains(t, body, "Dôvod: Reklamácia")
		assert.Contains(t, body, "Naliehavosť: vysoká")
	})
}

func TestHandle(t *testing.T) {
	t.Run("sent", func(t *testing.T) {
		n := &MockNotifier{configured: true}
		n.On("Notify", mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Ján Novák")
		})).Return(&twilio.Message{SID: "SM2"}, nil)

		rec := serve(n, `{"customer_name":"Ján Novák","customer_phone":"+421900000001"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"messageSid":"SM2"`)
		n.AssertExpectations(t)
	})

	t.Run("not configured", func(t *testing.T) {
		rec := serve(&MockNotifier{}, `{"customer_name":"Ján","customer_phone":"1"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := serve(&MockNotifier{configured: true}, `{"customer_name":"Ján"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("send failed", func(t *testing.T) {
		n := &MockNotifier{configured: true}
		n.On("Notify", mock.Anything, mock.Anything).Return(nil, twilio.ErrInternal)

		rec := serve(n, `{"customer_name":"Ján","customer_phone":"1"}`)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
