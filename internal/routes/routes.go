package routes

import (
	"net/http"

	"github.com/stylecast/wardrobe/internal/app"
	"github.com/stylecast/wardrobe/internal/handler"
	"github.com/stylecast/wardrobe/internal/metrics"
	"github.com/stylecast/wardrobe/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	debug := app.Cfg.Debug

	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UserService, app.IdentityProvider, app.TokenDelivery, app.Cfg)
	wardrobe := handler.NewWardrobeHandler(app.WardrobeService, debug)
	recommend := handler.NewRecommendHandler(app.RecommendationsService, app.InteractionsService, app.TripsService, app.TextService, debug)
	trips := handler.NewTripsHandler(app.TripsService, debug)
	interactions := handler.NewInteractionsHandler(app.InteractionsService, debug)
	usage := handler.NewUsageHandler(app.RateLimitService, debug)

	requireBearer := middleware.RequireBearer(app.AuthService)
	rateLimiter := app.AuthLimiter.Middleware

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", handler.Health)
	mux.Handle("GET /metrics", metrics.Handler(app.Registry))

	// OAuth (rate limited)
	mux.HandleFunc("GET /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /auth/callback", rateLimiter(auth.Callback))
	mux.HandleFunc("POST /auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES (Bearer token required)
	// ============================================================================

	// Session
	mux.HandleFunc("GET /auth/verify", requireBearer(auth.Verify))
	mux.HandleFunc("GET /auth/me", requireBearer(auth.Me))
	mux.HandleFunc("GET /usage", requireBearer(usage.Usage))

	// Wardrobe
	mux.HandleFunc("POST /wardrobe", requireBearer(wardrobe.Add))
	mux.HandleFunc("POST /wardrobe/add", requireBearer(wardrobe.Add))
	mux.HandleFunc("GET /wardrobe", requireBearer(wardrobe.List))
	mux.HandleFunc("DELETE /wardrobe/{itemId}", requireBearer(wardrobe.Delete))

	// Recommendations
	mux.HandleFunc("POST /recommend/wear", requireBearer(recommend.Wear))
	mux.HandleFunc("POST /recommend/wear/trip/{tripId}", requireBearer(recommend.WearForTrip))
	mux.HandleFunc("POST /recommend/buy", requireBearer(recommend.Buy))
	mux.HandleFunc("POST /recommend/pack", requireBearer(recommend.Pack))

	// Interactions
	mux.HandleFunc("GET /interactions", requireBearer(interactions.List))
	mux.HandleFunc("PATCH /interactions/{id}/feedback", requireBearer(interactions.Feedback))
	mux.HandleFunc("DELETE /interactions/{id}", requireBearer(interactions.Delete))

	// Trips
	mux.HandleFunc("GET /trips", requireBearer(trips.Latest))
	mux.HandleFunc("DELETE /trips/{tripId}", requireBearer(trips.Delete))

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID,
		middleware.SecurityHeaders,
		middleware.CORS(app.Cfg.FrontendURL),
		middleware.RequestLogging,
		middleware.Metrics(app.Metrics),
	)
}
