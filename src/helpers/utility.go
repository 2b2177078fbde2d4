package helpers

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a random version 4 UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}

// RequestID keeps a caller-supplied request ID when it parses as a UUID and
// otherwise mints a fresh one.
func RequestID(incoming string) string {
	if incoming != "" {
		if id, err := uuid.Parse(incoming); err == nil {
			return id.String()
		}
	}
	return GenerateUUID()
}
