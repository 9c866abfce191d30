package utils

import "github.com/google/uuid"

// UUIDGenerator hands out time-ordered v7 UUIDs, used as attachment blob
// names so keys sort by upload time.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a v7 UUID, falling back to v4 if the clock read fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
