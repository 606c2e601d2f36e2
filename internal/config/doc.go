// Package config manages application configuration for the conference API.
//
// The config package loads and validates configuration from environment variables.
// All configuration is centralized here to provide a single source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables:
//
//	cfg, err := config.Load()
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - AIConfig: proposal suggestion backend settings
//   - SeedConfig: development data seeding
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	SERVER_ENV           - development, production, or test
//	DB_HOST, DB_PORT     - SurrealDB endpoint
//	DB_NAMESPACE, DB_DATABASE - SurrealDB namespace and database
//	DB_USER, DB_PASSWORD - database credentials
//	JWT_PRIVATE_KEY_PATH - RSA private key (required in production)
//	JWT_PUBLIC_KEY_PATH  - RSA public key (required in production)
//	JWT_EXPIRATION_MINS  - access token lifetime in minutes
//	AI_API_KEY           - enables session suggestions when set
//	SEED_ENABLED         - seed demo data on startup (development only)
//
// # Validation
//
// Validate collects every configuration problem at once via errors.Join,
// so operators see all misconfiguration in a single startup failure.
package config
