package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer token issued at login. A session is live
// until it expires or RevokedAt is set by logout.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
