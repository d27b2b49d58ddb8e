// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Uplift.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, stytch_secret, etc.
//   - Environment variables: UPLIFT_MONGO_URI, UPLIFT_STYTCH_SECRET, etc.
//   - Command-line flags: --mongo_uri, --stytch_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "uplift", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Identity provider
	{Name: "stytch_base_url", Default: "https://test.stytch.com", Desc: "Stytch API base URL"},
	{Name: "stytch_project_id", Default: "", Desc: "Stytch project ID"},
	{Name: "stytch_secret", Default: "", Desc: "Stytch project secret"},

	// Scripture API proxy
	{Name: "bible_api_base_url", Default: "https://api.scripture.api.bible", Desc: "Scripture API base URL"},
	{Name: "bible_api_key", Default: "", Desc: "Scripture API key"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "UPLIFT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		StytchBaseURL:   appValues.String("stytch_base_url"),
		StytchProjectID: appValues.String("stytch_project_id"),
		StytchSecret:    appValues.String("stytch_secret"),

		BibleAPIBaseURL: appValues.String("bible_api_base_url"),
		BibleAPIKey:     appValues.String("bible_api_key"),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig enforces invariants that must hold before any backend
// is touched. The Stytch credentials are required outside dev: without
// them every request would fail verification.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env != "dev" {
		if appCfg.StytchProjectID == "" || appCfg.StytchSecret == "" {
			return fmt.Errorf("stytch_project_id and stytch_secret are required outside dev")
		}
	}
	return nil
}
