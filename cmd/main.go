package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"zenlarn/auth"
	"zenlarn/contract"
	"zenlarn/infrastructure/httpapi"
	"zenlarn/infrastructure/ws"
	"zenlarn/moderation"
	"zenlarn/repositories"
	"zenlarn/runtime"
	"zenlarn/runtime/workers"
	"zenlarn/services"
	"zenlarn/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := characterRune(config.ModerationCharReplacement)
	if err != nil {
		return err
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Databases (BadgerDB + Bluge index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		log.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Repositories
	messageRepository := repositories.NewMessageRepository(db, log, config.HistoryLimit)
	channelRepository := repositories.NewChannelRepository(db)
	requestRepository := repositories.NewRequestRepository(db)
	userRepository := repositories.NewUserRepository(db)
	searchRepository := repositories.NewSearchRepository(blugeWriter, log)

	// 4. Moderation
	censored, err := moderation.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("failed to load censored words: %w", err)
	}
	moderator, err := moderation.NewModerator(censored.Words, charReplacement)
	if err != nil {
		return fmt.Errorf("failed to build moderator: %w", err)
	}

	// 5. Runtime: registry, fan-out, supervision
	registry := runtime.NewRegistry()
	indexSink := sink.NewIndexSink(searchRepository, log)
	fanout := workers.NewEventFanout(log, registry,
		[]contract.EventSink{indexSink}, config.BufferSize, config.SinkTimeout)
	health := workers.NewHealthWorker(log, config.HealthInterval)

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(fanout, health)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sup.Run(ctx)

	// 6. Services
	tokens := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)
	membership := services.NewMembershipService(channelRepository)
	chatService := services.NewChatService(membership, messageRepository,
		searchRepository, registry, fanout, &moderator, log)
	channelService := services.NewChannelService(channelRepository)
	requestService := services.NewRequestService(requestRepository, channelRepository)
	authService := services.NewAuthService(userRepository, tokens)

	// 7. HTTP surface (REST + websocket)
	wsHandler := ws.NewHandler(chatService, tokens, config.ConnectionBufferSize, log)
	server := httpapi.NewServer(authService, chatService, channelService,
		requestService, health, wsHandler, tokens, log)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting server", "address", address, "at", time.Now().UTC())
		if err := server.Start(address); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown did not complete", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
