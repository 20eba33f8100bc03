package httpapi

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"zenlarn/auth"
	"zenlarn/infrastructure/ws"
	"zenlarn/runtime/workers"
	"zenlarn/services"
)

// Server is the single HTTP surface of the service: REST routes for
// accounts, channels and requests, plus the websocket endpoint for the
// real-time core.
type Server struct {
	echo     *echo.Echo
	auth     services.IAuthService
	chat     services.IChatService
	channels services.IChannelService
	requests services.IRequestService
	health   *workers.HealthWorker
	log      *slog.Logger
}

func NewServer(
	authService services.IAuthService,
	chat services.IChatService,
	channels services.IChannelService,
	requests services.IRequestService,
	health *workers.HealthWorker,
	wsHandler *ws.Handler,
	tokens auth.TokenManager,
	log *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		auth:     authService,
		chat:     chat,
		channels: channels,
		requests: requests,
		health:   health,
		log:      log,
	}

	e.POST("/api/register", s.register)
	e.POST("/api/login", s.login)
	e.GET("/healthz", s.healthz)

	wsHandler.Register(e)

	api := e.Group("/api", RequireToken(tokens))
	api.GET("/channels", s.listChannels)
	api.POST("/channels", s.createChannel)
	api.GET("/channels/:id", s.getChannel)
	api.GET("/channels/:id/messages", s.listMessages)
	api.GET("/channels/:id/search", s.searchMessages)
	api.POST("/requests", s.sendRequest)
	api.GET("/requests", s.listRequests)
	api.PATCH("/requests/:id", s.settleRequest)

	return s
}

func (s *Server) Start(address string) error {
	s.log.Info("HTTP server listening", "address", address)
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router, used by tests to serve requests
// without binding a port.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
