package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-directory/internal/api/dto"
	"github.com/spec-kit/member-directory/internal/auth"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/service"
	apperrors "github.com/spec-kit/member-directory/pkg/util"
)

// AnnouncementsHandler serves the community announcement board.
type AnnouncementsHandler struct {
	announcements *service.AnnouncementService
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcements *service.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{announcements: announcements}
}

// List handles GET /announcements. Only approved announcements appear,
// newest first, with the author's public identity attached.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	items, err := h.announcements.ListApproved(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"announcements": dto.NewAnnouncementFeedResponse(items)}})
}

// NewForm handles GET /announcements/new, describing the submission form.
func (h *AnnouncementsHandler) NewForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"categories": domain.AnnouncementCategories(),
	}})
}

// Create handles POST /announcements. New announcements enter the
// moderation queue as pending and stay invisible until approved.
func (h *AnnouncementsHandler) Create(c *fiber.Ctx) error {
	st := auth.StateFromContext(c)
	if !st.Authenticated {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	announcement, err := h.announcements.Create(c.Context(), st.UserID, service.AnnouncementInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: domain.AnnouncementCategory(req.Category),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAnnouncementResponse(announcement)})
}

// Delete handles DELETE /announcements/:id. Authors may remove their own
// announcements; admins may remove any.
func (h *AnnouncementsHandler) Delete(c *fiber.Ctx) error {
	st := auth.StateFromContext(c)
	if err := h.announcements.Delete(c.Context(), st, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}
