// Package uuid wraps id generation behind an interface so repositories
// can take deterministic ids in tests.
package uuid

import "github.com/google/uuid"

// Generator produces unique string ids.
type Generator interface {
	New() string
}

// GoogleUUIDGenerator generates random v4 UUIDs via google/uuid.
type GoogleUUIDGenerator struct{}

// NewGoogleUUIDGenerator creates the default generator.
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}
