package credential

import (
	"item-matcher/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service    *Service
	handler    *Handler
	masterKeys []string
}

// NewFeature creates the credential feature. masterKeys is the configured
// elevated key set guarding the admin endpoints.
func NewFeature(db *gorm.DB, logger *zap.Logger, masterKeys []string) *Feature {
	svc := NewService(db, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h, masterKeys: masterKeys}
}

// Service exposes the credential service so the pool feature can borrow its
// Authorize lookup and the CLI can manage keys directly.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "credential"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the api_keys table and registers the admin routes behind the
// master key check.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.Store().Migrate(); err != nil {
		return err
	}

	group := app.Group("/admin")
	group.Use(auth.NewMaster(auth.MasterConfig{Keys: f.masterKeys}))
	f.handler.RegisterRoutes(group)
	return nil
}
