package v1

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-screening-backend/config"
	"go-screening-backend/internal/delivery/http/middleware"
	"go-screening-backend/internal/domain"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/auth"
)

type RouterDeps struct {
	ConversationUC domain.ConversationUsecase
	CandidateUC    domain.CandidateUsecase
	HealthUC       usecase.HealthUsecase
	Tokens         *auth.TokenManager
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config)))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Conversation routes: session start is public, turns on an existing
	// session carry the session token.
	protected := v1.Group("")
	protected.Use(middleware.SessionAuth(deps.Tokens))
	messageLimit := middleware.RateLimitMiddleware(middleware.MessageRateLimitConfig())
	NewSessionHandler(v1, protected, messageLimit, deps.ConversationUC, deps.Tokens)

	// Stored-record routes for recruiters.
	admin := v1.Group("")
	admin.Use(middleware.AdminAuth(deps.Config))
	NewCandidateHandler(admin, deps.CandidateUC)

	return r
}
