package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/types"
	"github.com/rs/zerolog/log"
)

// LockedErrorType is the error type reported while the journal is locked
const LockedErrorType = "security.locked"

// LockChecker reports whether protected routes must be refused
type LockChecker interface {
	Locked() (bool, error)
}

// RequireUnlocked refuses the request with 423 Locked while a PIN is set and
// the session has not been unlocked
func RequireUnlocked(checker LockChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locked, err := checker.Locked()
		if err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("failed to read lock state")
			return types.NewCustomError(fiber.StatusInternalServerError, "security.state", "Unable to read lock state: %v", err)
		}
		if locked {
			return types.NewCustomError(fiber.StatusLocked, LockedErrorType, "Journal is locked. Unlock with your PIN to continue.")
		}
		return c.Next()
	}
}
