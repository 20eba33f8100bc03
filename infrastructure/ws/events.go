package ws

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client to server events.
const (
	EventJoinChannel  = "joinChannel"
	EventLeaveChannel = "leaveChannel"
	EventSendMessage  = "sendMessage"
)

// Server to client events.
const (
	EventInitialMessages = "initialMessages"
	EventNewMessage      = "newMessage"
	EventError           = "error"
)

// Envelope is the wire frame: a named event with an opaque payload.
// Unknown payload fields are ignored, unknown events are answered
// with an error event.
type Envelope struct {
	Event   string              `json:"event"`
	Payload jsoniter.RawMessage `json:"payload,omitempty"`
}

type JoinChannelPayload struct {
	ChannelID string `json:"channelId" validate:"required,uuid"`
}

type LeaveChannelPayload struct {
	ChannelID string `json:"channelId" validate:"required,uuid"`
}

// SendMessagePayload carries a message body. Any sender identity a
// client puts in the payload is ignored; identity comes from the token
// presented at connect time.
type SendMessagePayload struct {
	ChannelID string `json:"channelId" validate:"required,uuid"`
	Text      string `json:"text" validate:"required"`
}

// WireMessage is a message as clients see it.
type WireMessage struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channelId"`
	SenderEmail string    `json:"senderEmail"`
	Text        string    `json:"text"`
	Lang        string    `json:"lang,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type InitialMessagesPayload struct {
	ChannelID string        `json:"channelId"`
	Messages  []WireMessage `json:"messages"`
}

// ErrorPayload reports a failed operation back on the same connection.
// Event names the operation that failed.
type ErrorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

func newEnvelope(event string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: event, Payload: raw}, nil
}
