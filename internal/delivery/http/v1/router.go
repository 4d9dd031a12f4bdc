package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/aiclient"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	JobUC         domain.JobUsecase
	SavedJobUC    domain.SavedJobUsecase
	ApplicationUC domain.ApplicationUsecase
	ResumeUC      domain.ResumeUsecase
	UserRepo      domain.UserRepository
	Tokens        *auth.TokenManager
	AIClient      *aiclient.Client
	Redis         *goredis.Client
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before anything that can short-circuit a response.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(deps.Redis,
		middleware.DefaultRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	authCfg := middleware.AuthRateLimitConfig()
	authCfg.Limit = deps.Config.RateLimitAuthThreshold
	authCfg.Window = window

	authGroup := api.Group("")
	authGroup.Use(middleware.RateLimitMiddleware(deps.Redis, authCfg))

	loginGroup := api.Group("")
	loginGroup.Use(middleware.RateLimitMiddleware(deps.Redis, middleware.LoginRateLimitConfig()))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.UserRepo))

	v1 := api.Group("/v1")
	v1Protected := v1.Group("")
	v1Protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.UserRepo))

	uploadLimited := v1Protected.Group("")
	uploadLimited.Use(middleware.RateLimitMiddleware(deps.Redis, middleware.UploadRateLimitConfig()))

	// Resume upload is unauthenticated but still rate limited.
	publicUpload := v1.Group("")
	publicUpload.Use(middleware.RateLimitMiddleware(deps.Redis, middleware.UploadRateLimitConfig()))

	NewAuthHandler(authGroup, loginGroup, protected, deps.AuthUC)
	NewUserHandler(v1, v1Protected, uploadLimited, deps.ProfileUC)
	NewJobHandler(v1, v1Protected, deps.JobUC, deps.SavedJobUC)
	NewApplicationHandler(v1Protected, deps.ApplicationUC)
	NewResumeHandler(v1, publicUpload, deps.ResumeUC)
	NewInterviewHandler(v1, deps.AIClient)

	return r
}
