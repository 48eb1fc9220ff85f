package twilio

import openapi "github.com/twilio/twilio-go/rest/api/v2010"

// Message модель отправленного сообщения из Twilio
type Message struct {
	SID    string
	Status string // queued, sent, failed ...
	To     string
	From   string
	Body   string
}

func fromAPIMessage(m *openapi.ApiV2010Message) *Message {
	return &Message{
		SID:    deref(m.Sid),
		Status: deref(m.Status),
		To:     deref(m.To),
		From:   deref(m.From),
		Body:   deref(m.Body),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
