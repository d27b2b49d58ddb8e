// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	biblefeature "github.com/upliftapp/uplift/internal/app/features/bible"
	feedbackfeature "github.com/upliftapp/uplift/internal/app/features/feedback"
	groupsfeature "github.com/upliftapp/uplift/internal/app/features/groups"
	healthfeature "github.com/upliftapp/uplift/internal/app/features/health"
	prayersfeature "github.com/upliftapp/uplift/internal/app/features/prayers"
	usersfeature "github.com/upliftapp/uplift/internal/app/features/users"
	userstore "github.com/upliftapp/uplift/internal/app/store/users"
	"github.com/upliftapp/uplift/internal/app/system/auth"
	"github.com/upliftapp/uplift/internal/app/system/identity"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, and schema
// setup have completed. Bearer verification runs globally so any
// handler can ask auth.Current(r) for the caller; the per-feature
// routers decide which routes demand one.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	verifier := identity.NewClient(appCfg.StytchBaseURL, appCfg.StytchProjectID, appCfg.StytchSecret, logger)
	resolver := userstore.NewFetcher(deps.MongoDatabase)

	r := chi.NewRouter()
	r.Use(auth.VerifyBearer(verifier, resolver, logger))

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/user", usersfeature.Routes(usersHandler))

	prayersHandler := prayersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/prayer-request", prayersfeature.Routes(prayersHandler))

	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/group", groupsfeature.Routes(groupsHandler))

	feedbackHandler := feedbackfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/feedback", feedbackfeature.Routes(feedbackHandler))

	bibleHandler := biblefeature.NewHandler(appCfg.BibleAPIBaseURL, appCfg.BibleAPIKey, logger)
	r.Mount("/bible", biblefeature.Routes(bibleHandler))

	return r, nil
}
