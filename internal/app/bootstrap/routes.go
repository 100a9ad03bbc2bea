// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/forma-studio/forma/internal/app/features/authapi"
	careersfeature "github.com/forma-studio/forma/internal/app/features/careers"
	dashboardfeature "github.com/forma-studio/forma/internal/app/features/dashboard"
	explorefeature "github.com/forma-studio/forma/internal/app/features/explore"
	healthfeature "github.com/forma-studio/forma/internal/app/features/health"
	mediafeature "github.com/forma-studio/forma/internal/app/features/media"
	partnersfeature "github.com/forma-studio/forma/internal/app/features/partners"
	projectsfeature "github.com/forma-studio/forma/internal/app/features/projects"
	servicesfeature "github.com/forma-studio/forma/internal/app/features/services"
	systemusersfeature "github.com/forma-studio/forma/internal/app/features/systemusers"
	teamfeature "github.com/forma-studio/forma/internal/app/features/team"
	userstore "github.com/forma-studio/forma/internal/app/store/users"
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Forma mounts three surfaces:
//   - /api/public/*  read-only JSON for the site (published records only)
//   - /api/admin/*   scope-gated JSON CRUD for the admin panel
//   - /auth/*        session login/logout plus Google sign-in
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Session manager with secure cookies in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fetch fresh user data on each request so role changes and disabled
	// accounts take effect immediately. A store failure here puts the
	// request into an explicit degraded state instead of fabricating a
	// permissive profile; admin routes refuse degraded identities.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.FormaMongoDatabase))

	store, err := buildStorage(appCfg, logger)
	if err != nil {
		logger.Error("media storage init failed", zap.Error(err))
		return nil, err
	}

	db := deps.FormaMongoDatabase
	feed := changefeed.Default()

	r := chi.NewRouter()

	// Global auth middleware: loads the session identity into context.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.FormaMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Local media files (S3 deployments serve from the bucket/CDN instead).
	if appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Authentication
	authHandler := authfeature.NewHandler(db, sessionMgr, appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Entity features. Each feature owns its public and admin routers.
	projectsHandler := projectsfeature.NewHandler(db, feed, logger)
	teamHandler := teamfeature.NewHandler(db, feed, logger)
	servicesHandler := servicesfeature.NewHandler(db, feed, logger)
	careersHandler := careersfeature.NewHandler(db, feed, logger)
	exploreHandler := explorefeature.NewHandler(db, feed, logger)
	partnersHandler := partnersfeature.NewHandler(db, feed, logger)
	usersHandler := systemusersfeature.NewHandler(db, logger)
	mediaHandler := mediafeature.NewHandler(db, store, appCfg.StorageLocalURL, logger)
	dashboardHandler := dashboardfeature.NewHandler(db, feed, logger)

	r.Route("/api/public", func(pr chi.Router) {
		pr.Mount("/projects", projectsfeature.PublicRoutes(projectsHandler))
		pr.Mount("/team", teamfeature.PublicRoutes(teamHandler))
		pr.Mount("/services", servicesfeature.PublicRoutes(servicesHandler))
		pr.Mount("/careers", careersfeature.PublicRoutes(careersHandler))
		pr.Mount("/explore", explorefeature.PublicRoutes(exploreHandler))
		pr.Mount("/partners", partnersfeature.PublicRoutes(partnersHandler))
	})

	r.Route("/api/admin", func(ar chi.Router) {
		ar.Mount("/projects", projectsfeature.AdminRoutes(projectsHandler, sessionMgr))
		ar.Mount("/team", teamfeature.AdminRoutes(teamHandler, sessionMgr))
		ar.Mount("/services", servicesfeature.AdminRoutes(servicesHandler, sessionMgr))
		ar.Mount("/careers", careersfeature.AdminRoutes(careersHandler, sessionMgr))
		ar.Mount("/explore", explorefeature.AdminRoutes(exploreHandler, sessionMgr))
		ar.Mount("/partners", partnersfeature.AdminRoutes(partnersHandler, sessionMgr))
		ar.Mount("/users", systemusersfeature.AdminRoutes(usersHandler, sessionMgr))
		ar.Mount("/media", mediafeature.AdminRoutes(mediaHandler, sessionMgr))
		ar.Mount("/dashboard", dashboardfeature.AdminRoutes(dashboardHandler, sessionMgr))
	})

	return r, nil
}
