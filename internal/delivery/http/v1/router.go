package v1

import (
	"alvant-portal/internal/delivery/http/middleware"
	"alvant-portal/internal/domain"
	"alvant-portal/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	RegistrationUC domain.RegistrationUsecase
	ContactUC      domain.ContactUsecase
	AdminAuthUC    domain.AdminAuthUsecase
	HealthUC       usecase.HealthUsecase
	FrontendURL    string
	IsProduction   bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	// payloads with fields we do not know are rejected, not silently dropped
	binding.EnableDecoderDisallowUnknownFields = true

	if deps.HealthUC == nil {
		deps.HealthUC = usecase.NewHealthUsecase(nil, "")
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.FrontendURL, deps.IsProduction)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.IsProduction))
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	api.GET("/health", healthHandler(deps.HealthUC))
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := api.Group("")

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AdminAuthUC))
	{
		NewRegistrationHandler(public, protected, deps.RegistrationUC)
		NewContactHandler(public, protected, deps.ContactUC)
		NewAdminHandler(public, protected, deps.AdminAuthUC)
	}

	return r
}
