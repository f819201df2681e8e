// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body size limits). AppConfig is everything specific to
// Huddle: the MongoDB connection and the voting policy knobs.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// SingleVote enforces one vote per user per poll with a unique index.
	// Turning it off lets duplicate votes accumulate, matching the legacy
	// behavior some deployments still rely on.
	SingleVote bool
}
