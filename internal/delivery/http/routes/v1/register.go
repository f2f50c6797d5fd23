package v1

import (
	"hackmatch/internal/config"
	"hackmatch/internal/database"
	"hackmatch/internal/delivery/http/handler"
	"hackmatch/internal/delivery/http/middleware"
	"hackmatch/internal/infrastructure/cache"
	"hackmatch/internal/pkg/jwt"
	"hackmatch/internal/repository"
	"hackmatch/internal/usecase"
	"hackmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Register wires repositories, usecases and handlers under /api/v1.
// Browse endpoints (hackathons, skills) stay public; everything that
// acts on behalf of a user sits behind the JWT middleware.
func Register(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis, hub *ws.Hub) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	teamRepo := repository.NewPostgresTeamRepository(db)
	hackathonRepo := repository.NewPostgresHackathonRepository(db)
	requestRepo := repository.NewPostgresRequestRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)

	var calendarCache usecase.CalendarCache
	if redisCache != nil {
		calendarCache = redisCache
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc, cfg.Telegram.BotToken)
	userUC := usecase.NewUserUsecase(userRepo, skillRepo)
	teamUC := usecase.NewTeamUsecase(teamRepo, userRepo, requestRepo, hackathonRepo, ws.NewNotifier(hub))
	hackathonUC := usecase.NewHackathonUsecase(hackathonRepo, calendarCache)
	recommendationUC := usecase.NewRecommendationUsecase(userRepo, teamRepo)

	handler.NewAuthHandler(authUC).RegisterRoutes(r.Group("/auth"))
	handler.NewHackathonHandler(hackathonUC).RegisterRoutes(r.Group("/hackathons"))
	handler.NewSkillHandler(userUC).RegisterRoutes(r.Group("/skills"))

	protect := authMw.Middleware()
	handler.NewUserHandler(userUC).RegisterRoutes(r.Group("/users", protect))
	handler.NewTeamHandler(teamUC).RegisterRoutes(r.Group("/teams", protect))
	handler.NewRecommendationHandler(recommendationUC).RegisterRoutes(r.Group("/recommendations", protect))
}
