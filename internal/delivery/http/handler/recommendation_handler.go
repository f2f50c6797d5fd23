package handler

import (
	"errors"
	"strconv"
	"strings"

	"hackmatch/internal/delivery/http/dto"
	"hackmatch/internal/delivery/http/middleware"
	"hackmatch/internal/pkg/response"
	"hackmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.GetRecommendations)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params := usecase.RecommendationParams{
		Direction:       usecase.Direction(strings.TrimSpace(c.Query("direction"))),
		PreferredSkills: splitCSV(c.Query("skills")),
		PreferredRoles:  splitCSV(c.Query("roles")),
		MinScore:        parseQueryFloat(c, "min_score", 0),
		MaxResults:      parseQueryInt(c, "limit", 0),
	}

	if raw := strings.TrimSpace(c.Query("hackathon_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid hackathon id", nil, err)
		}
		params.HackathonID = id
	}

	res, err := h.uc.GetRecommendations(c.Context(), userID, params)
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRecommendations(res))
}

func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseQueryFloat(c fiber.Ctx, key string, defaultVal float64) float64 {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidDirection):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid recommendation direction", nil, err)
	case errors.Is(err, usecase.ErrNotTeamCaptain):
		return middleware.NewAppError(fiber.StatusForbidden, "Captain only", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
