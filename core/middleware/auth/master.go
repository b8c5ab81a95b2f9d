package auth

import "github.com/gofiber/fiber/v2"

// Master key messages.
const (
	MsgMissingMasterKey = "Missing master API key"
	MsgInvalidMasterKey = "Invalid master API key"
)

// MasterHeaderName is the request header carrying a master API key.
const MasterHeaderName = "X-Master-Api-Key"

// MasterConfig holds configuration for the master auth middleware.
type MasterConfig struct {
	// Keys is the configured set of master API keys. Master keys are supplied
	// by configuration and never persisted in the credential store.
	Keys []string
}

// NewMaster returns a middleware that authenticates elevated (cross-namespace)
// requests against the configured master key set.
func NewMaster(cfg MasterConfig) fiber.Handler {
	keys := make(map[string]struct{}, len(cfg.Keys))
	for _, k := range cfg.Keys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		apiKey := c.Get(MasterHeaderName)
		if apiKey == "" {
			return unauthorized(c, MsgMissingMasterKey)
		}

		if _, ok := keys[apiKey]; !ok {
			return unauthorized(c, MsgInvalidMasterKey)
		}

		return c.Next()
	}
}
