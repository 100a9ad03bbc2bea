// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for the Forma backend.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, logging, CORS, body limits);
// AppConfig is everything specific to this application.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: forma-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Media storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads/media")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/media")
	StorageS3Region  string // AWS region (only used if StorageType is "s3")
	StorageS3Bucket  string // S3 bucket name
	StorageS3Prefix  string // Key prefix (e.g., "media/")

	// Base URL for OAuth callbacks and absolute links
	BaseURL string // e.g., "https://forma.studio" or "http://localhost:3000"

	// Google OAuth configuration (admin sign-in)
	GoogleClientID     string
	GoogleClientSecret string

	// SuperAdmin bootstrap: promoted/created on startup so a fresh deploy
	// always has at least one account that can manage users.
	SuperAdminEmail string

	// Change feed buffer size (events queued between stores and the
	// dashboard consumer loop before publishers start dropping).
	FeedBuffer int
}
