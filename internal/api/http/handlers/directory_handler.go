package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-directory/internal/api/dto"
	"github.com/spec-kit/member-directory/internal/service"
)

// DirectoryHandler serves the gated member directory.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// List handles GET /directory. Members come back grouped by city, with
// optional ?country= and ?q= narrowing.
func (h *DirectoryHandler) List(c *fiber.Ctx) error {
	query := service.DirectoryQuery{Search: strings.TrimSpace(c.Query("q"))}
	if country := strings.TrimSpace(c.Query("country")); country != "" {
		query.Country = &country
	}

	groups, err := h.directory.List(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"groups": dto.NewDirectoryResponse(groups)}})
}

// Countries handles GET /directory/countries, the selector source.
func (h *DirectoryHandler) Countries(c *fiber.Ctx) error {
	countries, err := h.directory.Countries(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.CountryResponse, 0, len(countries))
	for _, country := range countries {
		out = append(out, dto.CountryResponse{Code: country.Code, Name: country.Name})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"countries": out}})
}
