// Package config provides configuration management for the registry service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL connection details
//   - Cache: Redis snapshot cache settings
//   - Storage: S3/MinIO credentials for the roll archive
//   - Log: Logging level and format
//
// Defaults come from `default` struct tags, registered recursively so that
// AutomaticEnv picks up every key (e.g. DATABASE_HOST -> database.host).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
