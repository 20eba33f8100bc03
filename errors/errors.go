package errors

import "fmt"

var (
	// Real-time core taxonomy. Everything surfaced to a client goes through
	// the transport boundary as a single error event.
	ErrUnauthorized    = fmt.Errorf("channel not found or unauthorized")
	ErrChannelNotFound = fmt.Errorf("channel not found")
	ErrEmptyMessage    = fmt.Errorf("message text is empty")
	ErrDeliveryFailure = fmt.Errorf("failed to send message")
	ErrHistoryFetch    = fmt.Errorf("failed to join channel")
	ErrInvalidPayload  = fmt.Errorf("invalid payload")

	// CRUD collaborators.
	ErrRequestAlreadySent = fmt.Errorf("request already sent")
	ErrRequestNotFound    = fmt.Errorf("request not found or already processed")

	// Accounts.
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	// Supervision and moderation bootstrapping.
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrOnlyCensoredFiles = fmt.Errorf("censored directory contains directories")
	ErrEmptyWords        = fmt.Errorf("no words have been found")
)
