package router

import (
	"time"

	"github.com/anonto42/scriblyn/backend/internal/handlers"
	"github.com/anonto42/scriblyn/backend/internal/middleware"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/anonto42/scriblyn/backend/internal/services"
	"github.com/anonto42/scriblyn/backend/internal/validators"
	"github.com/anonto42/scriblyn/backend/pkg/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// Options configures the HTTP surface.
type Options struct {
	JWTSecret string
	JWTTTL    time.Duration
	// FirebaseAuth verifies Firebase ID tokens; nil disables federated login.
	FirebaseAuth services.IDTokenVerifier
	// AllowOrigins defaults to every origin.
	AllowOrigins   []string
	RequestTimeout time.Duration
	// Metrics is optional; when set every request is observed.
	Metrics *middleware.Metrics
}

// New builds the echo instance serving the whole API over store.
func New(store *repositories.Store, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.Validator = validators.NewValidator()

	SetupMiddleware(e, opts)
	SetupRoutes(e, store, opts)
	return e
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, opts Options) {
	e.Pre(eMiddleware.RemoveTrailingSlash())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	if opts.Metrics != nil {
		e.Use(opts.Metrics.Middleware())
	}

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	if opts.RequestTimeout > 0 {
		e.Use(eMiddleware.ContextTimeout(opts.RequestTimeout))
	}
	log.Log.Debug("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, store *repositories.Store, opts Options) {
	e.GET("/", handlers.Root)
	e.GET("/health", handlers.HealthCheck)

	auth := handlers.AuthMiddleware{
		Required: middleware.JWTAuthMiddleware(opts.JWTSecret),
		Optional: middleware.OptionalJWTAuthMiddleware(opts.JWTSecret),
	}

	// --- Services ---
	populator := services.NewPopulator(store.Users, store.Messages)
	userService := services.NewUserService(store.Users, opts.FirebaseAuth)
	postService := services.NewPostService(store, populator)
	communityService := services.NewCommunityService(store, postService, populator)
	messageService := services.NewMessageService(store, populator)
	resourceService := services.NewResourceService(store, populator)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	handlers.NewAuthHandler(userService, opts.JWTSecret, opts.JWTTTL).RegisterAuthRoutes(authGroup)
	handlers.NewUserHandler(userService).RegisterProfileRoutes(authGroup, auth)

	handlers.NewPostHandler(postService).RegisterPostRoutes(api.Group("/posts"), auth)
	handlers.NewCommunityHandler(communityService).RegisterCommunityRoutes(api.Group("/communities"), auth)
	handlers.NewMessageHandler(messageService).RegisterMessageRoutes(api.Group("/messages"), auth)
	handlers.NewResourceHandler(resourceService).RegisterResourceRoutes(api.Group("/resources"), auth)

	log.Log.Debug("All routes configured.")
}
