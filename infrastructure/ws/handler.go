package ws

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"zenlarn/auth"
	"zenlarn/domain"
	"zenlarn/domain/event"
	"zenlarn/errors"
	"zenlarn/services"
	"zenlarn/sink"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxFrameSize = 64 << 10
)

var validate = validator.New()

// Handler terminates websocket connections and translates named events
// into chat service calls. One connection maps to exactly one registry
// entry; teardown detaches it from every channel in a single step.
type Handler struct {
	chat       services.IChatService
	tokens     auth.TokenManager
	upgrader   websocket.Upgrader
	bufferSize int
	log        *slog.Logger
}

func NewHandler(chat services.IChatService, tokens auth.TokenManager, bufferSize int, log *slog.Logger) *Handler {
	return &Handler{
		chat:   chat,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		bufferSize: bufferSize,
		log:        log,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/ws", h.Serve)
}

// session is the per-connection state shared by the read loop and the
// write pump. outbound carries direct replies (history, errors), the
// sink carries fan-out events; the write pump is the only goroutine
// that touches the connection for writing.
type session struct {
	conn     *websocket.Conn
	sink     *sink.ConnectionSink
	outbound chan Envelope
	email    string
	connID   domain.ConnectionID
}

// Serve upgrades the HTTP request and runs the connection until the
// peer goes away. Identity is resolved once, from the token query
// parameter; payloads never carry identity.
func (h *Handler) Serve(c echo.Context) error {
	claims, err := h.tokens.ValidateToken(c.QueryParam("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "error", err)
		return nil
	}
	defer func() {
		if err := conn.Close(); err != nil {
			h.log.Debug("Closing websocket", "error", err)
		}
	}()

	s := &session{
		conn:     conn,
		sink:     sink.NewConnectionSink(h.bufferSize),
		outbound: make(chan Envelope, 16),
		email:    claims.Email,
		connID:   domain.NewConnectionID(),
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	go h.writePump(ctx, s)
	h.readLoop(ctx, s)

	// Single atomic cleanup: after this no channel can reach the sink
	h.chat.Disconnect(s.connID)
	h.log.Info("Connection closed", "conn_id", s.connID, "email", s.email)
	return nil
}

func (h *Handler) readLoop(ctx context.Context, s *session) {
	s.conn.SetReadLimit(maxFrameSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.log.Warn("Failed to set read deadline", "error", err)
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				h.log.Warn("Unexpected websocket error", "conn_id", s.connID, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.reply(ctx, s, errorEnvelope("", "invalid frame"))
			continue
		}

		h.dispatch(ctx, s, env)
	}
}

func (h *Handler) dispatch(ctx context.Context, s *session, env Envelope) {
	switch env.Event {
	case EventJoinChannel:
		h.handleJoin(ctx, s, env.Payload)
	case EventLeaveChannel:
		h.handleLeave(ctx, s, env.Payload)
	case EventSendMessage:
		h.handleSend(ctx, s, env.Payload)
	default:
		h.reply(ctx, s, errorEnvelope(env.Event, "unknown event"))
	}
}

func (h *Handler) handleJoin(ctx context.Context, s *session, raw []byte) {
	var p JoinChannelPayload
	if err := decodePayload(raw, &p); err != nil {
		h.reply(ctx, s, errorEnvelope(EventJoinChannel, errors.ErrInvalidPayload.Error()))
		return
	}

	history, err := h.chat.Join(domain.ChannelID(p.ChannelID), s.email, s.connID, s.sink)
	if err != nil {
		h.reply(ctx, s, errorEnvelope(EventJoinChannel, err.Error()))
		return
	}

	env, err := newEnvelope(EventInitialMessages, InitialMessagesPayload{
		ChannelID: p.ChannelID,
		Messages:  toWireMessages(history),
	})
	if err != nil {
		h.log.Error("Failed to encode history", "conn_id", s.connID, "error", err)
		return
	}
	h.reply(ctx, s, env)
}

func (h *Handler) handleLeave(ctx context.Context, s *session, raw []byte) {
	var p LeaveChannelPayload
	if err := decodePayload(raw, &p); err != nil {
		h.reply(ctx, s, errorEnvelope(EventLeaveChannel, errors.ErrInvalidPayload.Error()))
		return
	}
	h.chat.Leave(domain.ChannelID(p.ChannelID), s.connID)
}

func (h *Handler) handleSend(ctx context.Context, s *session, raw []byte) {
	var p SendMessagePayload
	if err := decodePayload(raw, &p); err != nil {
		h.reply(ctx, s, errorEnvelope(EventSendMessage, errors.ErrInvalidPayload.Error()))
		return
	}

	err := h.chat.Publish(ctx, domain.PostMessageCommand{
		ChannelID: domain.ChannelID(p.ChannelID),
		Sender:    s.email,
		Text:      p.Text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		h.reply(ctx, s, errorEnvelope(EventSendMessage, err.Error()))
	}
}

// writePump owns the write side of the connection. It serializes direct
// replies, fan-out events and keepalive pings into a single writer.
func (h *Handler) writePump(ctx context.Context, s *session) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case env := <-s.outbound:
			if !h.write(s, env) {
				return
			}
		case e := <-s.sink.Events:
			stored, ok := e.(event.MessageStored)
			if !ok {
				continue
			}
			env, err := newEnvelope(EventNewMessage, toWireMessage(stored))
			if err != nil {
				h.log.Error("Failed to encode event", "conn_id", s.connID, "error", err)
				continue
			}
			if !h.write(s, env) {
				return
			}
		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) write(s *session, env Envelope) bool {
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}

	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("Failed to encode frame", "conn_id", s.connID, "error", err)
		return true
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.log.Debug("Write failed", "conn_id", s.connID, "error", err)
		return false
	}
	return true
}

func (h *Handler) reply(ctx context.Context, s *session, env Envelope) {
	select {
	case s.outbound <- env:
	case <-ctx.Done():
	}
}

func decodePayload(raw []byte, payload any) error {
	if err := json.Unmarshal(raw, payload); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return nil
}

func errorEnvelope(failedEvent, message string) Envelope {
	env, err := newEnvelope(EventError, ErrorPayload{Event: failedEvent, Message: message})
	if err != nil {
		// ErrorPayload marshalling cannot fail
		return Envelope{Event: EventError}
	}
	return env
}

func toWireMessage(e event.MessageStored) WireMessage {
	return WireMessage{
		ID:          e.ID.String(),
		ChannelID:   string(e.ChannelID),
		SenderEmail: e.Sender,
		Text:        e.Text,
		Lang:        e.Lang,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toWireMessages(messages []domain.Message) []WireMessage {
	wire := make([]WireMessage, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, WireMessage{
			ID:          m.ID.String(),
			ChannelID:   string(m.ChannelID),
			SenderEmail: m.Sender,
			Text:        m.Text,
			Lang:        m.Lang,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	return wire
}
