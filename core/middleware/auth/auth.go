package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Messages returned to clients. The invalid-credential message deliberately
// does not distinguish an unknown key from a namespace mismatch, so callers
// cannot enumerate which namespaces a key belongs to.
const (
	MsgMissingKey       = "Missing API key"
	MsgMissingNamespace = "Missing namespace"
	MsgInvalidKey       = "Invalid API key or insufficient permissions for namespace"
)

// HeaderName is the request header carrying a namespace-scoped API key.
const HeaderName = "X-Api-Key"

// PrincipalKey is the Fiber locals key under which the authenticated
// principal is stored.
const PrincipalKey = "principal"

// Principal is the namespace-scoped identity attached to a request after a
// successful credential check.
type Principal struct {
	Namespace string
	ApiKey    string
}

// Lookup reports whether a live credential matches both the key and namespace.
// It must be a pure read; the middleware runs before any mutation.
type Lookup func(ctx context.Context, apiKey, namespace string) (bool, error)

// Config holds configuration for the namespace auth middleware.
type Config struct {
	// Lookup validates the presented key against the credential store.
	Lookup Lookup
}

// New returns a middleware that authenticates namespace-scoped requests.
// It expects the namespace as a :namespace route parameter and the API key in
// the X-Api-Key header.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get(HeaderName)
		if apiKey == "" {
			return unauthorized(c, MsgMissingKey)
		}

		namespace := c.Params("namespace")
		if namespace == "" {
			return unauthorized(c, MsgMissingNamespace)
		}

		ok, err := cfg.Lookup(c.Context(), apiKey, namespace)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Credential lookup failed",
			})
		}
		if !ok {
			return unauthorized(c, MsgInvalidKey)
		}

		c.Locals(PrincipalKey, Principal{Namespace: namespace, ApiKey: apiKey})
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}
