package pool

import (
	"item-matcher/core/logger"
	"item-matcher/feature/pool/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// User-visible messages for the match endpoint.
const (
	MsgAlreadyAssigned = "Item already assigned to this requestor"
	MsgMatched         = "Item successfully matched"
	MsgNoneAvailable   = "No available items in this namespace"
)

// Handler handles HTTP requests for a namespace's item pool.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the pool routes on a namespace-scoped group.
// The group is expected to already carry the namespace auth middleware.
func (h *Handler) RegisterRoutes(group fiber.Router) {
	group.Post("/match", h.HandleMatch)
	group.Get("/items", h.HandleListItems)
	group.Get("/stats", h.HandleStats)
	group.Patch("/items", h.HandleBatchUpdate)
	group.Put("/items", h.HandleSyncSet)
}

// HandleMatch assigns one item to the requestor.
// @Summary Match an item
// @Description Assigns the oldest available item to the requestor, or returns their existing assignment.
// @Tags pool
// @Accept json
// @Produce json
// @Param namespace path string true "Namespace"
// @Param request body models.MatchRequest true "Requestor"
// @Success 200 {object} models.MatchResponse "Match outcome"
// @Router /namespaces/{namespace}/match [post]
func (h *Handler) HandleMatch(c *fiber.Ctx) error {
	namespace := c.Params("namespace")
	l := logger.WithRayID(h.service.logger, c)

	var req models.MatchRequest
	if err := c.BodyParser(&req); err != nil || req.Requestor == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.MatchResponse{
			Success: false,
			Message: "requestor is required",
		})
	}

	outcome, err := h.service.Match(c.Context(), namespace, req.Requestor)
	if err != nil {
		l.Error("Match failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if outcome.NoneAvailable {
		return c.JSON(models.MatchResponse{
			Success: false,
			Message: MsgNoneAvailable,
		})
	}

	message := MsgMatched
	if outcome.AlreadyAssigned {
		message = MsgAlreadyAssigned
	}

	return c.JSON(models.MatchResponse{
		Success:         true,
		Item:            outcome.Token,
		AlreadyAssigned: outcome.AlreadyAssigned,
		Message:         message,
	})
}

// HandleListItems lists live items with optional filtering.
// @Summary List items
// @Description Lists the namespace's live items, optionally filtered by token or requestor.
// @Tags pool
// @Produce json
// @Param namespace path string true "Namespace"
// @Param token query string false "Filter by token"
// @Param requestor query string false "Filter by requestor"
// @Success 200 {object} models.ListResponse "Items"
// @Router /namespaces/{namespace}/items [get]
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	namespace := c.Params("namespace")
	l := logger.WithRayID(h.service.logger, c)

	filter := Filter{
		Token:     c.Query("token"),
		Requestor: c.Query("requestor"),
	}

	items, err := h.service.ListItems(c.Context(), namespace, filter)
	if err != nil {
		l.Error("List items failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.ItemView{
			Token:     item.Token,
			Requestor: item.Requestor,
			MatchedAt: item.MatchedAt,
		})
	}

	return c.JSON(models.ListResponse{Items: views})
}

// HandleStats returns pool counts.
// @Summary Namespace statistics
// @Description Returns total, matched, and available counts over live items.
// @Tags pool
// @Produce json
// @Param namespace path string true "Namespace"
// @Success 200 {object} models.StatsResponse "Counts"
// @Router /namespaces/{namespace}/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	namespace := c.Params("namespace")
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Stats(c.Context(), namespace)
	if err != nil {
		l.Error("Stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stats)
}

// HandleBatchUpdate adds and removes tokens in one call.
// @Summary Batch update items
// @Description Adds and removes items. Duplicate tokens are skipped and reported in the message.
// @Tags pool
// @Accept json
// @Produce json
// @Param namespace path string true "Namespace"
// @Param request body models.BatchRequest true "Tokens to add and remove"
// @Success 200 {object} models.UpdateResponse "Summary"
// @Router /namespaces/{namespace}/items [patch]
func (h *Handler) HandleBatchUpdate(c *fiber.Ctx) error {
	namespace := c.Params("namespace")
	l := logger.WithRayID(h.service.logger, c)

	var req models.BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.UpdateResponse{
			Success: false,
			Message: "invalid request body",
		})
	}

	summary, err := h.service.BatchUpdate(c.Context(), namespace, req.Add, req.Remove)
	if err != nil {
		l.Error("Batch update failed", zap.Error(err),
			zap.Int("added", summary.Added),
			zap.Int("removed", summary.Removed),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.UpdateResponse{
		Success: true,
		Message: summary.Message(),
	})
}

// HandleSyncSet makes the pool equal the given token set.
// @Summary Sync the item set
// @Description Declaratively replaces the namespace's live token set. Only the difference is applied.
// @Tags pool
// @Accept json
// @Produce json
// @Param namespace path string true "Namespace"
// @Param request body models.SyncRequest true "Desired token set"
// @Success 200 {object} models.UpdateResponse "Summary"
// @Router /namespaces/{namespace}/items [put]
func (h *Handler) HandleSyncSet(c *fiber.Ctx) error {
	namespace := c.Params("namespace")
	l := logger.WithRayID(h.service.logger, c)

	var req models.SyncRequest
	if err := c.BodyParser(&req); err != nil || req.Items == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.UpdateResponse{
			Success: false,
			Message: "items is required",
		})
	}

	summary, err := h.service.SyncSet(c.Context(), namespace, req.Items)
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.UpdateResponse{
		Success: true,
		Message: summary.Message(),
	})
}
