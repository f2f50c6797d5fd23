package handler

import (
	"errors"
	"time"

	"hackmatch/internal/delivery/http/dto"
	"hackmatch/internal/delivery/http/middleware"
	"hackmatch/internal/pkg/response"
	"hackmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type HackathonHandler struct {
	uc usecase.HackathonUsecase
}

func NewHackathonHandler(uc usecase.HackathonUsecase) *HackathonHandler {
	return &HackathonHandler{uc: uc}
}

func (h *HackathonHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/calendar", h.Calendar)
	r.Get("/upcoming", h.NextUpcoming)
	r.Get("/:id", h.Get)
}

func (h *HackathonHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), parseQueryInt(c, "limit", 50), parseQueryInt(c, "offset", 0))
	if err != nil {
		return mapHackathonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromHackathons(items))
}

func (h *HackathonHandler) Calendar(c fiber.Ctx) error {
	year := parseQueryInt(c, "year", 0)
	month := parseQueryInt(c, "month", 0)

	cal, err := h.uc.Calendar(c.Context(), year, time.Month(month))
	if err != nil {
		return mapHackathonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCalendar(cal))
}

func (h *HackathonHandler) NextUpcoming(c fiber.Ctx) error {
	item, err := h.uc.NextUpcoming(c.Context())
	if err != nil {
		return mapHackathonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromHackathon(item))
}

func (h *HackathonHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid hackathon id", nil, err)
	}

	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapHackathonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromHackathon(item))
}

func mapHackathonUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrHackathonNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Hackathon not found", nil, err)
	case errors.Is(err, usecase.ErrNoUpcomingHackathon):
		return middleware.NewAppError(fiber.StatusNotFound, "No upcoming hackathon", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
