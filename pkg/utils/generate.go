package utils

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	bizNumberMin = 100000
	bizNumberMax = 999999
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== BUSINESS NUMBER ====================

// GenerateBizNumber returns a random 6-digit business number. Uniqueness is
// left to the store.
func GenerateBizNumber() int {
	return bizNumberMin + rand.IntN(bizNumberMax-bizNumberMin+1)
}
