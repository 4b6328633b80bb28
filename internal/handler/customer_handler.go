package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arkan-dev/custodia-api/internal/dto"
	"github.com/arkan-dev/custodia-api/internal/service"
	"github.com/arkan-dev/custodia-api/internal/utils"
)

// CustomerHandler wires customer record endpoints.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler constructs the handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("component", "customer_handler").Logger(),
	}
}

// Register attaches customer routes to the router group.
func (h *CustomerHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/deleted", h.listDeleted)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/restore", h.restore)
	router.Get("/:id/versions", h.versions)
}

func (h *CustomerHandler) list(c *fiber.Ctx) error {
	customers, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list customers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list customers")
	}

	return utils.SendSuccess(c, "customers retrieved", customers)
}

func (h *CustomerHandler) listDeleted(c *fiber.Ctx) error {
	customers, err := h.service.ListDeleted(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list deleted customers")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list deleted customers")
	}

	return utils.SendSuccess(c, "deleted customers retrieved", customers)
}

func (h *CustomerHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	customer, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "customer not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch customer")
	}

	return utils.SendSuccess(c, "customer retrieved", customer)
}

func (h *CustomerHandler) create(c *fiber.Ctx) error {
	var payload dto.CustomerPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	customer, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create customer")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "customer created", customer)
}

func (h *CustomerHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.CustomerPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	customer, err := h.service.Update(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "customer not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update customer")
	}

	return utils.SendSuccess(c, "customer updated", customer)
}

func (h *CustomerHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Delete(c.Context(), id, actorFromContext(c)); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete customer")
	}

	return utils.SendSuccess(c, "customer deleted", fiber.Map{"id": id})
}

func (h *CustomerHandler) restore(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.Restore(c.Context(), id, actorFromContext(c)); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to restore customer")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to restore customer")
	}

	return utils.SendSuccess(c, "customer restored", fiber.Map{"id": id})
}

func (h *CustomerHandler) versions(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	history, err := h.service.Versions(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "customer not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch customer versions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch customer versions")
	}

	return utils.SendSuccess(c, "customer versions retrieved", history)
}
