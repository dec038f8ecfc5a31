package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/agency-content/backend/internal/http/dto"
	"github.com/agency-content/backend/internal/middleware"
	"github.com/agency-content/backend/internal/models"
	"github.com/agency-content/backend/internal/repositories"
	"github.com/agency-content/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContentHandler struct {
	contentService    *services.ContentService
	generationService *services.GenerationService
	log               *zap.Logger
}

func NewContentHandler(contentService *services.ContentService, generationService *services.GenerationService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contentService:    contentService,
		generationService: generationService,
		log:               log,
	}
}

func startParamsFromQuery(c *fiber.Ctx) (services.StartParams, error) {
	clientID, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		return services.StartParams{}, errors.New("invalid client_id")
	}

	wordCount := 800
	if v := c.Query("word_count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			wordCount = n
		}
	}

	var keywords []string
	for _, k := range strings.Split(c.Query("keywords"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	return services.StartParams{
		ClientID:    clientID,
		ContentType: c.Query("content_type"),
		Topic:       c.Query("topic"),
		WordCount:   wordCount,
		Tone:        c.Query("tone"),
		Keywords:    keywords,
	}, nil
}

// GenerateContent accepts the request, writes the draft placeholder,
// and returns 202 without waiting for the job.
func (h *ContentHandler) GenerateContent(c *fiber.Ctx) error {
	params, err := startParamsFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	content, err := h.generationService.Start(c.Context(), middleware.GetOwnerID(c), params)
	if err != nil {
		return h.mapGenerationError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(dto.GenerationAcceptedResponse{
		ContentID: content.ID.String(),
		Status:    "processing",
	})
}

// GenerateContentTest blocks on a single direct generation call and
// surfaces failures as 500 with diagnostic detail.
func (h *ContentHandler) GenerateContentTest(c *fiber.Ctx) error {
	params, err := startParamsFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	text, err := h.generationService.GenerateTest(c.Context(), middleware.GetOwnerID(c), params)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
		}
		var enumErr *models.InvalidEnumError
		if errors.As(err, &enumErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: enumErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{"text": text}})
}

func (h *ContentHandler) GetSuggestions(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("clientId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	n := 5
	if v := c.Query("suggestion_count"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 20 {
			n = parsed
		}
	}

	suggestions, err := h.generationService.Suggestions(c.Context(), clientID, middleware.GetOwnerID(c), n)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
		}
		h.log.Error("suggestions failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "suggestion generation failed"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: suggestions})
}

func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	filter, err := contentFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	contents, err := h.contentService.List(c.Context(), middleware.GetOwnerID(c), filter)
	if err != nil {
		h.log.Error("list content failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: contents})
}

func (h *ContentHandler) ListClientContent(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("clientId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	filter, err := contentFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	contents, err := h.contentService.ListByClient(c.Context(), clientID, middleware.GetOwnerID(c), filter)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
		}
		h.log.Error("list client content failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: contents})
}

func (h *ContentHandler) GetClientContentStats(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("clientId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid client id"})
	}

	stats, err := h.contentService.Stats(c.Context(), clientID, middleware.GetOwnerID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
		}
		h.log.Error("content stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: stats})
}

func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid content id"})
	}

	content, err := h.contentService.GetByID(c.Context(), id, middleware.GetOwnerID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "content not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: content})
}

func (h *ContentHandler) UpdateContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid content id"})
	}

	var req dto.UpdateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	contentType, err := models.ParseContentType(req.ContentType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	status := ""
	if req.Status != "" {
		if status, err = models.ParseContentStatus(req.Status); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
	}

	content := &models.Content{
		Title:       req.Title,
		Body:        req.Body,
		ContentType: contentType,
		Status:      status,
		Topic:       req.Topic,
		Keywords:    strings.Join(req.Keywords, ","),
		WordCount:   req.WordCount,
	}

	updated, err := h.contentService.Update(c.Context(), id, middleware.GetOwnerID(c), content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "content not found"})
		}
		if errors.Is(err, services.ErrInvalidTransition) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		h.log.Error("update content failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: updated})
}

func (h *ContentHandler) DeleteContent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid content id"})
	}

	if err := h.contentService.Delete(c.Context(), id, middleware.GetOwnerID(c)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "content not found"})
		}
		h.log.Error("delete content failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *ContentHandler) mapGenerationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "client not found"})
	}
	var enumErr *models.InvalidEnumError
	if errors.As(err, &enumErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: enumErr.Error()})
	}
	h.log.Error("generation start failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
}

func contentFilterFromQuery(c *fiber.Ctx) (repositories.ContentFilter, error) {
	filter := repositories.ContentFilter{Limit: 20}

	if v := c.Query("status"); v != "" {
		status, err := models.ParseContentStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if v := c.Query("content_type"); v != "" {
		ct, err := models.ParseContentType(v)
		if err != nil {
			return filter, err
		}
		filter.ContentType = &ct
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	return filter, nil
}
