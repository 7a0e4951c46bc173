package models

import "encoding/json"

// Envelope is the response shape of every EDUCA API endpoint.
type Envelope struct {
	Status int          `json:"status"`
	Body   EnvelopeBody `json:"body"`
}

// EnvelopeBody carries the user-facing message and the payload.
type EnvelopeBody struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NoticeLevel mirrors the toast variants of the web client.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient message for the user about the outcome of an action.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
