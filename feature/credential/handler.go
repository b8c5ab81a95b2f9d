package credential

import (
	"errors"
	"time"

	"item-matcher/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateRequest is the body of POST /admin/api-keys.
type CreateRequest struct {
	ApiKey    string `json:"api_key"`
	Namespace string `json:"namespace"`
}

// MutationResponse is the envelope returned by credential mutations.
type MutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CredentialView is the public projection of a credential.
type CredentialView struct {
	ApiKey    string    `json:"api_key"`
	Namespace string    `json:"namespace"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResponse wraps all live credentials.
type ListResponse struct {
	ApiKeys []CredentialView `json:"api_keys"`
}

// Handler handles HTTP requests for credential management.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the admin routes on a master-guarded group.
func (h *Handler) RegisterRoutes(group fiber.Router) {
	group.Post("/api-keys", h.HandleCreate)
	group.Delete("/api-keys/:apiKey", h.HandleDelete)
	group.Get("/api-keys", h.HandleList)
}

// HandleCreate creates a namespace-scoped API key.
// @Summary Create API key
// @Description Creates a namespace-scoped API key. Requires a master key.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Key and namespace"
// @Success 200 {object} MutationResponse "Result"
// @Router /admin/api-keys [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil || req.ApiKey == "" || req.Namespace == "" {
		return c.Status(fiber.StatusBadRequest).JSON(MutationResponse{
			Success: false,
			Message: "api_key and namespace are required",
		})
	}

	err := h.service.Create(c.Context(), req.ApiKey, req.Namespace)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.JSON(MutationResponse{
			Success: false,
			Message: "API key already exists",
		})
	}
	if err != nil {
		l.Error("Credential create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(MutationResponse{
		Success: true,
		Message: "API key created successfully",
	})
}

// HandleDelete soft-deletes an API key.
// @Summary Delete API key
// @Description Soft-deletes an API key by value. Idempotent. Requires a master key.
// @Tags admin
// @Produce json
// @Param apiKey path string true "API key"
// @Success 200 {object} MutationResponse "Result"
// @Router /admin/api-keys/{apiKey} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Delete(c.Context(), c.Params("apiKey")); err != nil {
		l.Error("Credential delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(MutationResponse{
		Success: true,
		Message: "API key deleted successfully",
	})
}

// HandleList lists all live API keys across namespaces.
// @Summary List API keys
// @Description Lists all live API keys. Requires a master key.
// @Tags admin
// @Produce json
// @Success 200 {object} ListResponse "Keys"
// @Router /admin/api-keys [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	creds, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Credential list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	views := make([]CredentialView, 0, len(creds))
	for _, cred := range creds {
		views = append(views, CredentialView{
			ApiKey:    cred.ApiKey,
			Namespace: cred.Namespace,
			CreatedAt: cred.CreatedAt,
		})
	}

	return c.JSON(ListResponse{ApiKeys: views})
}
