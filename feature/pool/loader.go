package pool

import (
	"item-matcher/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	lookup  auth.Lookup
}

// NewFeature creates the pool feature. The lookup validates namespace-scoped
// API keys; it comes from the credential feature so the pool itself stays
// ignorant of credential storage.
func NewFeature(db *gorm.DB, logger *zap.Logger, lookup auth.Lookup) *Feature {
	svc := NewService(db, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h, lookup: lookup}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "pool"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the item table and registers the namespace-scoped routes
// behind the credential check.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.Store().Migrate(); err != nil {
		return err
	}

	group := app.Group("/namespaces/:namespace")
	group.Use(auth.New(auth.Config{Lookup: f.lookup}))
	f.handler.RegisterRoutes(group)
	return nil
}
