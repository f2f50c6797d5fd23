package handler

import (
	"errors"

	"hackmatch/internal/delivery/http/dto"
	"hackmatch/internal/delivery/http/middleware"
	"hackmatch/internal/pkg/response"
	"hackmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type TeamHandler struct {
	uc usecase.TeamUsecase
}

type createTeamRequest struct {
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	HackathonID       uuid.UUID `json:"hackathon_id"`
	LookingForMembers bool      `json:"looking_for_members"`
}

type updateTeamRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	LookingForMembers *bool   `json:"looking_for_members"`
}

type joinTeamRequest struct {
	Message string `json:"message"`
}

type inviteRequest struct {
	UserID  uuid.UUID `json:"user_id"`
	Message string    `json:"message"`
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

func NewTeamHandler(uc usecase.TeamUsecase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

func (h *TeamHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/", h.ListByHackathon)
	r.Get("/:id", h.Get)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Post("/:id/join", h.RequestJoin)
	r.Post("/:id/invite", h.Invite)
	r.Get("/:id/requests", h.ListRequests)
	r.Post("/requests/:requestId/respond", h.Respond)
	r.Post("/leave", h.Leave)
}

func (h *TeamHandler) Create(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.HackathonID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Hackathon id required", nil, nil)
	}

	t, err := h.uc.Create(c.Context(), callerID, req.HackathonID, usecase.CreateTeamInput{
		Name:              req.Name,
		Description:       req.Description,
		LookingForMembers: req.LookingForMembers,
	})
	if err != nil {
		return mapTeamUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromTeam(t))
}

func (h *TeamHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid team id", nil, err)
	}

	t, members, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapTeamUsecaseError(err)
	}

	out := dto.TeamDetailResponse{TeamResponse: dto.FromTeam(t), Members: dto.FromUsers(members)}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *TeamHandler) ListByHackathon(c fiber.Ctx) error {
	hackathonID, err := uuid.Parse(c.Query("hackathon_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Hackathon id required", nil, err)
	}

	teams, err := h.uc.ListByHackathon(c.Context(), hackathonID, parseQueryInt(c, "limit", 50), parseQueryInt(c, "offset", 0))
	if err != nil {
		return mapTeamUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTeams(teams))
}

func (h *TeamHandler) Update(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid team id", nil, err)
	}

	var req updateTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	t, err := h.uc.Update(c.Context(), callerID, id, usecase.UpdateTeamInput{
		Name:              req.Name,
		Description:       req.Description,
		LookingForMembers: req.LookingForMembers,
	})
	if err != nil {
		return mapTeamUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTeam(t))
}

func (h *TeamHandler) Delete(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid team id", nil, err)
	}

	if err := h.uc.Delete(c.Context(), callerID, id); err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *TeamHandler) RequestJoin(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid team id", nil, err)
	}

	var req joinTeamRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rq, err := h.uc.RequestJoin(c.Context(), callerID, id, req.Message)
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromTeamRequest(rq))
}

func (h *TeamHandler) Invite(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid team id", nil, err)
	}

	var req inviteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.UserID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "User id required", nil, nil)
	}

	rq, err := h.uc.Invite(c.Context(), callerID, id, req.UserID, req.Message)
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromTeamRequest(rq))
}

func (h *TeamHandler) Respond(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request id", nil, err)
	}

	var req respondRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rq, err := h.uc.Respond(c.Context(), callerID, requestID, req.Accept)
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTeamRequest(rq))
}

func (h *TeamHandler) ListRequests(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid team id", nil, err)
	}

	requests, err := h.uc.ListRequests(c.Context(), callerID, id)
	if err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromTeamRequests(requests))
}

func (h *TeamHandler) Leave(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	if err := h.uc.Leave(c.Context(), callerID); err != nil {
		return mapTeamUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapTeamUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrTeamNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Team not found", nil, err)
	case errors.Is(err, usecase.ErrHackathonNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Hackathon not found", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrNotCaptain):
		return middleware.NewAppError(fiber.StatusForbidden, "Captain only", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, usecase.ErrAlreadyInTeam):
		return middleware.NewAppError(fiber.StatusConflict, "User already belongs to a team", nil, err)
	case errors.Is(err, usecase.ErrNotInTeam):
		return middleware.NewAppError(fiber.StatusConflict, "User is not on a team", nil, err)
	case errors.Is(err, usecase.ErrCaptainCannotLeave):
		return middleware.NewAppError(fiber.StatusConflict, "Captain cannot leave own team", nil, err)
	case errors.Is(err, usecase.ErrTeamNotLooking):
		return middleware.NewAppError(fiber.StatusConflict, "Team is not looking for members", nil, err)
	case errors.Is(err, usecase.ErrDuplicateRequest):
		return middleware.NewAppError(fiber.StatusConflict, "Pending request already exists", nil, err)
	case errors.Is(err, usecase.ErrRequestClosed):
		return middleware.NewAppError(fiber.StatusConflict, "Request already handled", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
