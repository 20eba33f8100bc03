package domain

import "github.com/google/uuid"

// ConnectionID identifies one live transport session. A user with two open
// clients holds two distinct connection IDs and receives every broadcast on
// each of them.
type ConnectionID string

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}
