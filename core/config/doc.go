// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file via godotenv. Defaults are declared as struct tags on the partial
// config structs (server, database, log) and registered with Viper through
// reflection, so SERVER_PORT maps to server.port and so on.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatalf("Failed to load configuration: %v", err)
//	}
package config
