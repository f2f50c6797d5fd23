package handler

import (
	"errors"
	"strconv"

	"hackmatch/internal/delivery/http/dto"
	"hackmatch/internal/delivery/http/middleware"
	"hackmatch/internal/pkg/response"
	"hackmatch/internal/repository"
	"hackmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	Username    *string  `json:"username"`
	FullName    *string  `json:"full_name"`
	MainRole    *string  `json:"main_role"`
	ReadyToTeam *bool    `json:"ready_to_team"`
	Skills      []string `json:"skills"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Me)
	r.Patch("/me", h.UpdateMe)
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.respondProfile(c, userID)
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, skills, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		Username:    req.Username,
		FullName:    req.FullName,
		MainRole:    req.MainRole,
		ReadyToTeam: req.ReadyToTeam,
		Skills:      req.Skills,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(usr, skills))
}

func (h *UserHandler) GetByID(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}
	return h.respondProfile(c, id)
}

func (h *UserHandler) List(c fiber.Ctx) error {
	f := repository.UserListFilter{
		Role:      c.Query("role"),
		ReadyOnly: c.Query("ready") == "true",
		Limit:     parseQueryInt(c, "limit", 50),
		Offset:    parseQueryInt(c, "offset", 0),
	}

	users, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUsers(users))
}

func (h *UserHandler) respondProfile(c fiber.Ctx, id uuid.UUID) error {
	usr, skills, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(usr, skills))
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrUnknownRole):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown role", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
