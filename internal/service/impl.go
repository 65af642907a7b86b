package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RealClock — продовая реализация Clock
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// UUIDTokens — 32 hex-символа из UUIDv4 (Wallet требует не менее 16)
type UUIDTokens struct{}

func (UUIDTokens) NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
