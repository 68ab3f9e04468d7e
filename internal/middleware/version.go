package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/types"
)

// APIVersion is the version of the local API served by this build
const APIVersion = "1.0.0"

// VersionMiddleware parses the X-Api-Version header, stores it in context and
// rejects requests for a major version this build does not serve
func VersionMiddleware() fiber.Handler {
	major := majorOf(APIVersion)

	return func(c *fiber.Ctx) error {
		version := strings.TrimSpace(c.Get("X-Api-Version", APIVersion))

		// Support version aliases
		switch version {
		case "1", "1.0":
			version = "1.0.0"
		}

		if majorOf(version) != major {
			return types.NewCustomError(fiber.StatusBadRequest, "version", "Unsupported API version %q, this server speaks %s", version, APIVersion)
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", APIVersion)

		return c.Next()
	}
}

func majorOf(version string) string {
	version = strings.TrimPrefix(version, "v")
	if i := strings.IndexByte(version, '.'); i >= 0 {
		return version[:i]
	}
	return version
}
