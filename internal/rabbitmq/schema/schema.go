package schema

import (
	"encoding/json"
	"pms/internal/core/domain/notification"
)

const ContentType = "application/json"

// Email is the queued form of a rendered notification message.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

func FromMessage(m notification.Message) Email {
	return Email(m)
}

func (e Email) Message() notification.Message {
	return notification.Message(e)
}

func (e *Email) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Email) Unmarshal(data []byte) error {
	return json.Unmarshal(data, e)
}
