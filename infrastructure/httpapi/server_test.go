package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"zenlarn/auth"
	"zenlarn/contract"
	"zenlarn/errors"
	"zenlarn/infrastructure/ws"
	"zenlarn/moderation"
	"zenlarn/repositories"
	"zenlarn/runtime"
	"zenlarn/runtime/workers"
	"zenlarn/services"
)

// newTestServer wires the full HTTP surface on throwaway storage.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR).
		WithValueLogFileSize(16 << 20))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	req.NoError(err)
	t.Cleanup(func() { _ = blugeWriter.Close() })

	messageRepository := repositories.NewMessageRepository(db, log, nil)
	channelRepository := repositories.NewChannelRepository(db)
	requestRepository := repositories.NewRequestRepository(db)
	userRepository := repositories.NewUserRepository(db)
	searchRepository := repositories.NewSearchRepository(blugeWriter, log)

	moderator, err := moderation.NewModerator([]string{"badger"}, '*')
	req.NoError(err)

	registry := runtime.NewRegistry()
	fanout := workers.NewEventFanout(log, registry, []contract.EventSink{}, 10, time.Second)
	health := workers.NewHealthWorker(log, time.Minute)

	tokens := auth.NewTokenManager("httpapi_test_secret_value", time.Hour)
	membership := services.NewMembershipService(channelRepository)
	chat := services.NewChatService(membership, messageRepository,
		searchRepository, registry, fanout, &moderator, log)

	return NewServer(
		services.NewAuthService(userRepository, tokens),
		chat,
		services.NewChannelService(channelRepository),
		services.NewRequestService(requestRepository, channelRepository),
		health,
		ws.NewHandler(chat, tokens, 10, log),
		tokens,
		log,
	)
}

func do(t *testing.T, server *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set(echoHeaderContentType, "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.Echo().ServeHTTP(recorder, request)
	return recorder
}

const echoHeaderContentType = "Content-Type"

func registerUser(t *testing.T, server *Server, email string) string {
	t.Helper()
	recorder := do(t, server, http.MethodPost, "/api/register", "", map[string]string{
		"email": email, "password": "ComplexPass123!",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out))
	return out.Token
}

func TestServer_RegisterAndLogin(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	token := registerUser(t, server, "alice@example.com")
	req.NotEmpty(token)

	t.Run("should login with the registered password", func(t *testing.T) {
		recorder := do(t, server, http.MethodPost, "/api/login", "", map[string]string{
			"email": "alice@example.com", "password": "ComplexPass123!",
		})
		req.Equal(http.StatusOK, recorder.Code)
	})

	t.Run("should reject a second registration for the same email", func(t *testing.T) {
		recorder := do(t, server, http.MethodPost, "/api/register", "", map[string]string{
			"email": "alice@example.com", "password": "ComplexPass123!",
		})
		req.Equal(http.StatusConflict, recorder.Code)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		recorder := do(t, server, http.MethodPost, "/api/login", "", map[string]string{
			"email": "alice@example.com", "password": "WrongPass123!",
		})
		req.Equal(http.StatusUnauthorized, recorder.Code)
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/api/register",
			strings.NewReader("{not json"))
		request.Header.Set(echoHeaderContentType, "application/json")

		recorder := httptest.NewRecorder()
		server.Echo().ServeHTTP(recorder, request)

		req.Equal(http.StatusBadRequest, recorder.Code)
		req.Contains(recorder.Body.String(), errors.ErrInvalidPayload.Error())
	})
}

func TestServer_ChannelAccess(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	aliceToken := registerUser(t, server, "alice@example.com")
	bobToken := registerUser(t, server, "bob@example.com")

	recorder := do(t, server, http.MethodPost, "/api/channels", aliceToken,
		map[string]string{"name": "general"})
	req.Equal(http.StatusCreated, recorder.Code)

	var channel struct {
		ID           string   `json:"id"`
		Participants []string `json:"participants"`
	}
	req.NoError(json.Unmarshal(recorder.Body.Bytes(), &channel))
	req.Equal([]string{"alice@example.com"}, channel.Participants)

	t.Run("should hide the channel from non participants", func(t *testing.T) {
		recorder := do(t, server, http.MethodGet, "/api/channels/"+channel.ID, bobToken, nil)
		req.Equal(http.StatusForbidden, recorder.Code)
	})

	t.Run("should refuse requests without a token", func(t *testing.T) {
		recorder := do(t, server, http.MethodGet, "/api/channels", "", nil)
		req.Equal(http.StatusUnauthorized, recorder.Code)
	})

	t.Run("should grant access after an accepted request", func(t *testing.T) {
		recorder := do(t, server, http.MethodPost, "/api/requests", aliceToken, map[string]string{
			"channelId": channel.ID, "target": "bob@example.com",
		})
		req.Equal(http.StatusCreated, recorder.Code)

		var request struct {
			ID string `json:"id"`
		}
		req.NoError(json.Unmarshal(recorder.Body.Bytes(), &request))

		// Bob sees it among his pending requests
		recorder = do(t, server, http.MethodGet, "/api/requests", bobToken, nil)
		req.Equal(http.StatusOK, recorder.Code)
		req.Contains(recorder.Body.String(), request.ID)

		// Alice cannot settle a request addressed to bob
		recorder = do(t, server, http.MethodPatch, "/api/requests/"+request.ID, aliceToken,
			map[string]string{"action": "accept"})
		req.Equal(http.StatusNotFound, recorder.Code)

		recorder = do(t, server, http.MethodPatch, "/api/requests/"+request.ID, bobToken,
			map[string]string{"action": "accept"})
		req.Equal(http.StatusNoContent, recorder.Code)

		recorder = do(t, server, http.MethodGet, "/api/channels/"+channel.ID, bobToken, nil)
		req.Equal(http.StatusOK, recorder.Code)
	})

	t.Run("should page message history for participants only", func(t *testing.T) {
		messageRecorder := do(t, server, http.MethodGet,
			fmt.Sprintf("/api/channels/%s/messages", channel.ID), bobToken, nil)
		req.Equal(http.StatusOK, messageRecorder.Code)

		mallory := registerUser(t, server, "mallory@example.com")
		messageRecorder = do(t, server, http.MethodGet,
			fmt.Sprintf("/api/channels/%s/messages", channel.ID), mallory, nil)
		req.Equal(http.StatusForbidden, messageRecorder.Code)
	})
}

func TestServer_Healthz(t *testing.T) {
	req := require.New(t)
	server := newTestServer(t)

	recorder := do(t, server, http.MethodGet, "/healthz", "", nil)
	req.Equal(http.StatusOK, recorder.Code)
}
