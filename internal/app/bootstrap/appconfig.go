// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: HTTP ports, TLS, logging
// level and the like live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: grouphub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// File storage configuration for uploaded course materials
	StorageLocalPath string // Local storage path (e.g., "./uploads/materials")
	MaxUploadMB      int    // Per-file upload size cap in MiB

	// Base URL of this deployment; used to build OAuth callback URLs.
	BaseURL string // e.g., "https://grouphub.example.com" or "http://localhost:3000"

	// Google OAuth configuration. Both blank disables Google sign-in.
	GoogleClientID     string
	GoogleClientSecret string
}
