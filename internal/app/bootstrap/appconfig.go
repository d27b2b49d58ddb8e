// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers framework-level settings (ports, TLS,
// logging, CORS); everything specific to this application lives here
// and is loaded in LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Identity provider (Stytch) credentials for bearer-token
	// verification.
	StytchBaseURL   string
	StytchProjectID string
	StytchSecret    string

	// Scripture API proxied by the bible feature.
	BibleAPIBaseURL string
	BibleAPIKey     string
}
