package handlers

import (
	"errors"
	"strconv"

	"github.com/agency-content/backend/internal/http/dto"
	"github.com/agency-content/backend/internal/middleware"
	"github.com/agency-content/backend/internal/models"
	"github.com/agency-content/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *services.ClientService
	log           *zap.Logger
}

func NewClientHandler(clientService *services.ClientService, log *zap.Logger) *ClientHandler {
	return &ClientHandler{clientService: clientService, log: log}
}

func clientFromRequest(req dto.ClientRequest) *models.Client {
	return &models.Client{
		Name:               req.Name,
		Industry:           req.Industry,
		BrandVoice:         req.BrandVoice,
		TargetAudience:     req.TargetAudience,
		ContentPreferences: req.ContentPreferences,
		WebsiteURL:         req.WebsiteURL,
		SocialProfiles:     req.SocialProfiles,
	}
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Name == "" || req.Industry == "" || req.BrandVoice == "" || req.TargetAudience == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "name, industry, brand_voice, and target_audience are required"})
	}

	client := clientFromRequest(req)
	ownerID := middleware.GetOwnerID(c)
	if err := h.clientService.Create(c.Context(), ownerID, client); err != nil {
		h.log.Error("create client failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	client, err := h.clientService.GetByID(c.Context(), id, middleware.GetOwnerID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: client})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	limit, offset := paginationParams(c)
	clients, err := h.clientService.List(c.Context(), middleware.GetOwnerID(c), limit, offset)
	if err != nil {
		h.log.Error("list clients failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: clients})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	updated, err := h.clientService.Update(c.Context(), id, middleware.GetOwnerID(c), clientFromRequest(req))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
		}
		h.log.Error("update client failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	if err := h.clientService.Delete(c.Context(), id, middleware.GetOwnerID(c)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
		}
		h.log.Error("delete client failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func paginationParams(c *fiber.Ctx) (limit, offset int) {
	limit = 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
