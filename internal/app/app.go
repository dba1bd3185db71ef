package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/stylecast/wardrobe/internal/config"
	"github.com/stylecast/wardrobe/internal/metrics"
	"github.com/stylecast/wardrobe/internal/middleware"
	"github.com/stylecast/wardrobe/internal/repository"
	"github.com/stylecast/wardrobe/internal/service"
	"github.com/stylecast/wardrobe/internal/service/delivery"
	"github.com/stylecast/wardrobe/internal/storage"
)

type App struct {
	Cfg                    *config.Config
	Store                  storage.Store
	Registry               *prometheus.Registry
	Metrics                metrics.Recorder
	AuthLimiter            *middleware.RateLimiter
	IdentityProvider       service.IdentityProvider
	TokenDelivery          delivery.Strategy
	AuthService            *service.AuthService
	UserService            *service.UserService
	RateLimitService       *service.RateLimitService
	WardrobeService        *service.WardrobeService
	TripsService           *service.TripsService
	InteractionsService    *service.InteractionsService
	RecommendationsService *service.RecommendationsService
	TextService            *service.TextTransformationsService
}

// Deps are the external collaborators of the app. New builds the production
// ones; tests pass a memory store and fakes to Build.
type Deps struct {
	Store     storage.Store
	Completer service.Completer
	Provider  service.IdentityProvider
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	tables := repository.NewTables(cfg)

	store, err := storage.New(ctx, cfg, tables.All()...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return Build(cfg, Deps{
		Store:     store,
		Completer: service.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
		Provider:  service.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL()),
	})
}

func Build(cfg *config.Config, deps Deps) (*App, error) {
	tables := repository.NewTables(cfg)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewCollector(registry)

	tokenDelivery, err := delivery.NewStrategy(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token delivery: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(deps.Store, tables.Users)
	wardrobeRepository := repository.NewWardrobeRepository(deps.Store, tables.Wardrobe)
	tripRepository := repository.NewTripRepository(deps.Store, tables.Trips)
	interactionRepository := repository.NewInteractionRepository(deps.Store, tables.Interactions)
	rateLimitRepository := repository.NewRateLimitRepository(deps.Store, tables.RateLimits)

	// Services
	authService := service.NewAuthService(cfg.JWTSecret, cfg.SessionTokenTTL)
	userService := service.NewUserService(userRepository)
	rateLimitService := service.NewRateLimitService(rateLimitRepository, cfg.MaxRequestsPerDay, recorder)
	llmService := service.NewLLMService(deps.Completer, rateLimitService, recorder)
	wardrobeService := service.NewWardrobeService(wardrobeRepository)
	tripsService := service.NewTripsService(tripRepository)
	interactionsService := service.NewInteractionsService(interactionRepository)
	recommendationsService := service.NewRecommendationsService(llmService, wardrobeService, cfg.MinWardrobeItems)
	textService := service.NewTextTransformationsService(llmService)

	return &App{
		Cfg:                    cfg,
		Store:                  deps.Store,
		Registry:               registry,
		Metrics:                recorder,
		AuthLimiter:            middleware.RateLimitAuth(cfg.TrustProxyHeaders),
		IdentityProvider:       deps.Provider,
		TokenDelivery:          tokenDelivery,
		AuthService:            authService,
		UserService:            userService,
		RateLimitService:       rateLimitService,
		WardrobeService:        wardrobeService,
		TripsService:           tripsService,
		InteractionsService:    interactionsService,
		RecommendationsService: recommendationsService,
		TextService:            textService,
	}, nil
}

func (a *App) Close() error {
	if a.AuthLimiter != nil {
		a.AuthLimiter.Stop()
	}
	return nil
}
