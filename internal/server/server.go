package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skilletapp/skillet/internal/backup"
	"github.com/skilletapp/skillet/internal/handler"
	"github.com/skilletapp/skillet/internal/middleware"
	"github.com/skilletapp/skillet/internal/push"
	"github.com/skilletapp/skillet/internal/recommend"
	"github.com/skilletapp/skillet/internal/store"
	ws "github.com/skilletapp/skillet/internal/websocket"
)

// Config holds the server's wiring configuration.
type Config struct {
	JWTSecret       string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Backup          backup.Config
}

type Server struct {
	db            *sql.DB
	cfg           Config
	hub           *ws.Hub
	authH         *handler.AuthHandler
	familyMemberH *handler.FamilyMemberHandler
	pantryH       *handler.PantryHandler
	ingredientH   *handler.IngredientHandler
	recipeH       *handler.RecipeHandler
	mealPlanH     *handler.MealPlanHandler
	mediaH        *handler.MediaHandler
	recH          *handler.RecommendationHandler
	settingsH     *handler.SettingsHandler
	backupH       *handler.BackupHandler
	pushH         *handler.PushHandler
	rateLimiter   *middleware.RateLimiter
	backupManager *backup.Manager
	pushService   *push.Service
	pushScheduler *push.Scheduler
	logger        *slog.Logger
}

func New(db *sql.DB, cfg Config, recSvc *recommend.Service, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	familyMemberStore := store.NewFamilyMemberStore(db)
	pantryStore := store.NewPantryStore(db)
	ingredientStore := store.NewIngredientStore(db)
	recipeStore := store.NewRecipeStore(db)
	mealPlanStore := store.NewMealPlanStore(db)
	mediaStore := store.NewMediaStore(db)
	settingsStore := store.NewSettingsStore(db)
	backupStore := store.NewBackupStore(db)
	pushStore := store.NewPushStore(db)

	backupMgr := backup.NewManager(cfg.Backup, db, backupStore, settingsStore, logger)

	var pushSvc *push.Service
	var pushSched *push.Scheduler
	var pushH *handler.PushHandler
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSvc = push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
		pushSched = push.NewScheduler(pushSvc, pushStore, mealPlanStore, pantryStore, settingsStore, logger.With("component", "push"))
		pushH = handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push_handler"))
	}

	return &Server{
		db:            db,
		cfg:           cfg,
		hub:           hub,
		authH:         handler.NewAuthHandler(userStore, cfg.JWTSecret, logger.With("component", "auth")),
		familyMemberH: handler.NewFamilyMemberHandler(familyMemberStore, hub, logger.With("component", "family_member")),
		pantryH:       handler.NewPantryHandler(pantryStore, hub, logger.With("component", "pantry")),
		ingredientH:   handler.NewIngredientHandler(ingredientStore, logger.With("component", "ingredient")),
		recipeH:       handler.NewRecipeHandler(recipeStore, familyMemberStore, hub, logger.With("component", "recipe")),
		mealPlanH:     handler.NewMealPlanHandler(mealPlanStore, recipeStore, pantryStore, hub, logger.With("component", "meal_plan")),
		mediaH:        handler.NewMediaHandler(mediaStore, hub, logger.With("component", "media")),
		recH:          handler.NewRecommendationHandler(recSvc, pantryStore, familyMemberStore, recipeStore, hub, logger.With("component", "recommendation")),
		settingsH:     handler.NewSettingsHandler(settingsStore, logger.With("component", "settings")),
		backupH:       handler.NewBackupHandler(backupMgr, backupStore, logger.With("component", "backup_handler")),
		pushH:         pushH,
		rateLimiter:   middleware.NewRateLimiter(),
		backupManager: backupMgr,
		pushService:   pushSvc,
		pushScheduler: pushSched,
		logger:        logger,
	}
}

// BackupManager returns the backup manager for lifecycle control.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

// PushScheduler returns the push scheduler, or nil when VAPID keys are unset.
func (s *Server) PushScheduler() *push.Scheduler {
	return s.pushScheduler
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("POST /api/v1/auth/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/v1/auth/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.Handle("GET /metrics", promhttp.Handler())

	// Protected routes
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.cfg.JWTSecret)
	outerMux.Handle("/api/v1/", authMiddleware(protectedMux))

	logged := middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
	return middleware.Metrics(logged)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/auth/me", s.authH.Me)

	// Family members
	mux.HandleFunc("GET /api/v1/family-members", s.familyMemberH.List)
	mux.HandleFunc("POST /api/v1/family-members", s.familyMemberH.Create)
	mux.HandleFunc("GET /api/v1/family-members/{id}", s.familyMemberH.Get)
	mux.HandleFunc("PUT /api/v1/family-members/{id}", s.familyMemberH.Update)
	mux.HandleFunc("DELETE /api/v1/family-members/{id}", s.familyMemberH.Delete)
	mux.HandleFunc("PUT /api/v1/family-members/sort", s.familyMemberH.UpdateSortOrder)

	// Pantry
	mux.HandleFunc("GET /api/v1/pantry", s.pantryH.List)
	mux.HandleFunc("POST /api/v1/pantry", s.pantryH.Create)
	mux.HandleFunc("GET /api/v1/pantry/categories", s.pantryH.Categories)
	mux.HandleFunc("GET /api/v1/pantry/{id}", s.pantryH.Get)
	mux.HandleFunc("PUT /api/v1/pantry/{id}", s.pantryH.Update)
	mux.HandleFunc("DELETE /api/v1/pantry/{id}", s.pantryH.Delete)

	// Ingredients
	mux.HandleFunc("GET /api/v1/ingredients", s.ingredientH.List)
	mux.HandleFunc("POST /api/v1/ingredients", s.ingredientH.Create)
	mux.HandleFunc("PUT /api/v1/ingredients/{id}", s.ingredientH.Update)
	mux.HandleFunc("DELETE /api/v1/ingredients/{id}", s.ingredientH.Delete)

	// Recipes
	mux.HandleFunc("GET /api/v1/recipes", s.recipeH.List)
	mux.HandleFunc("POST /api/v1/recipes", s.recipeH.Create)
	mux.HandleFunc("GET /api/v1/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("PUT /api/v1/recipes/{id}", s.recipeH.Update)
	mux.HandleFunc("DELETE /api/v1/recipes/{id}", s.recipeH.Delete)
	mux.HandleFunc("POST /api/v1/recipes/{id}/ratings", s.recipeH.Rate)
	mux.HandleFunc("GET /api/v1/recipes/{id}/ratings", s.recipeH.Ratings)

	// Meal plans
	mux.HandleFunc("GET /api/v1/meal-plans", s.mealPlanH.List)
	mux.HandleFunc("POST /api/v1/meal-plans", s.mealPlanH.Create)
	mux.HandleFunc("GET /api/v1/meal-plans/{id}", s.mealPlanH.Get)
	mux.HandleFunc("PUT /api/v1/meal-plans/{id}", s.mealPlanH.Update)
	mux.HandleFunc("DELETE /api/v1/meal-plans/{id}", s.mealPlanH.Delete)
	mux.HandleFunc("POST /api/v1/meal-plans/{id}/cook", s.mealPlanH.Cook)

	// Media
	mux.HandleFunc("GET /api/v1/media", s.mediaH.List)
	mux.HandleFunc("POST /api/v1/media", s.mediaH.Create)
	mux.HandleFunc("GET /api/v1/media/{id}", s.mediaH.Get)
	mux.HandleFunc("PUT /api/v1/media/{id}", s.mediaH.Update)
	mux.HandleFunc("DELETE /api/v1/media/{id}", s.mediaH.Delete)

	// Recommendations
	mux.HandleFunc("POST /api/v1/recommendations", s.recH.Suggest)
	mux.HandleFunc("POST /api/v1/recommendations/save", s.recH.Save)
	mux.HandleFunc("DELETE /api/v1/recommendations/cache", s.recH.InvalidateCache)

	// Settings
	mux.HandleFunc("GET /api/v1/settings", s.settingsH.GetAll)
	mux.HandleFunc("PUT /api/v1/settings", s.settingsH.Set)

	// Backups
	mux.HandleFunc("POST /api/v1/backups/run", s.backupH.Run)
	mux.HandleFunc("GET /api/v1/backups", s.backupH.List)
	mux.HandleFunc("GET /api/v1/backups/status", s.backupH.Status)
	mux.HandleFunc("GET /api/v1/backups/{id}/download", s.backupH.Download)
	mux.HandleFunc("POST /api/v1/backups/{id}/restore", s.backupH.Restore)

	// Push notifications
	if s.pushH != nil {
		mux.HandleFunc("POST /api/v1/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("GET /api/v1/push/subscriptions", s.pushH.ListSubscriptions)
		mux.HandleFunc("DELETE /api/v1/push/subscriptions/{id}", s.pushH.Unsubscribe)
		mux.HandleFunc("GET /api/v1/push/vapid-key", s.pushH.VAPIDKey)
		mux.HandleFunc("POST /api/v1/push/test", s.pushH.TestNotification)
	}

	// WebSocket
	mux.HandleFunc("GET /api/v1/ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
