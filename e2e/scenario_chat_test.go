package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type testChatScenarioSuite struct {
	BaseHTTPSuite
}

func TestChatScenarioSuite(t *testing.T) {
	suite.Run(t, &testChatScenarioSuite{})
}

type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wireMessage struct {
	ID          string `json:"id"`
	ChannelID   string `json:"channelId"`
	SenderEmail string `json:"senderEmail"`
	Text        string `json:"text"`
}

func (s *testChatScenarioSuite) dialWS(token string) *websocket.Conn {
	url := fmt.Sprintf("ws://%s/ws?token=%s", s.Config.ServerAddr, token)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return conn
}

func (s *testChatScenarioSuite) send(conn *websocket.Conn, event string, payload any) {
	raw, err := json.Marshal(payload)
	s.Require().NoError(err)
	s.Require().NoError(conn.WriteJSON(envelope{Event: event, Payload: raw}))
}

func (s *testChatScenarioSuite) receive(conn *websocket.Conn, expected string) json.RawMessage {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	var env envelope
	s.Require().NoError(conn.ReadJSON(&env))
	s.Require().Equal(expected, env.Event)
	return env.Payload
}

func (s *testChatScenarioSuite) TestFullChatFlow() {
	// Unique identities per run so the suite can be replayed on a live server
	suffix := uuid.NewString()[:8]
	aliceEmail := fmt.Sprintf("alice-%s@example.com", suffix)
	bobEmail := fmt.Sprintf("bob-%s@example.com", suffix)
	password := "ComplexPass123!"

	var aliceToken, bobToken, channelID string

	s.Run("Step 1: Register both users", func() {
		s.Step("Registering alice and bob")
		var out struct {
			Token string `json:"token"`
		}
		code := s.Do(http.MethodPost, "/api/register", "", map[string]string{
			"email": aliceEmail, "password": password,
		}, &out)
		s.Require().Equal(http.StatusCreated, code)
		aliceToken = out.Token

		code = s.Do(http.MethodPost, "/api/register", "", map[string]string{
			"email": bobEmail, "password": password,
		}, &out)
		s.Require().Equal(http.StatusCreated, code)
		bobToken = out.Token
	})

	s.Run("Step 2: Alice creates a channel and invites bob", func() {
		s.Step("Creating channel and sending request")
		var channel struct {
			ID string `json:"id"`
		}
		code := s.Do(http.MethodPost, "/api/channels", aliceToken,
			map[string]string{"name": "e2e-general"}, &channel)
		s.Require().Equal(http.StatusCreated, code)
		channelID = channel.ID

		var request struct {
			ID string `json:"id"`
		}
		code = s.Do(http.MethodPost, "/api/requests", aliceToken, map[string]string{
			"channelId": channelID, "target": bobEmail,
		}, &request)
		s.Require().Equal(http.StatusCreated, code)

		code = s.Do(http.MethodPatch, "/api/requests/"+request.ID, bobToken,
			map[string]string{"action": "accept"}, nil)
		s.Require().Equal(http.StatusNoContent, code)
	})

	s.Run("Step 3: Both join and alice publishes", func() {
		s.Step("Real-time exchange over websocket")
		aliceConn := s.dialWS(aliceToken)
		defer aliceConn.Close()
		bobConn := s.dialWS(bobToken)
		defer bobConn.Close()

		s.send(aliceConn, "joinChannel", map[string]string{"channelId": channelID})
		s.receive(aliceConn, "initialMessages")
		s.send(bobConn, "joinChannel", map[string]string{"channelId": channelID})
		s.receive(bobConn, "initialMessages")

		s.send(aliceConn, "sendMessage", map[string]string{
			"channelId": channelID, "text": "hello bob",
		})

		// Both participants receive the broadcast, sender included
		for _, conn := range []*websocket.Conn{aliceConn, bobConn} {
			var msg wireMessage
			payload := s.receive(conn, "newMessage")
			s.Require().NoError(json.Unmarshal(payload, &msg))
			s.Require().Equal("hello bob", msg.Text)
			s.Require().Equal(aliceEmail, msg.SenderEmail)
		}
	})

	s.Run("Step 4: History is replayed on rejoin", func() {
		s.Step("Verifying replay through REST")
		var page struct {
			Messages []wireMessage `json:"messages"`
		}
		code := s.Do(http.MethodGet, "/api/channels/"+channelID+"/messages", bobToken, nil, &page)
		s.Require().Equal(http.StatusOK, code)
		s.Require().NotEmpty(page.Messages)
		s.Require().Equal("hello bob", page.Messages[0].Text)
	})
}
