// Package config provides configuration management for the power grid game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Loading rule table overrides from YAML files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - The power plant deck (cost, fuel type, fuel requirement, capacity)
//   - The board map as a city list and weighted connections
//   - Optionally a YAML rules file overriding the standard tables
//
// Available Configurations:
//
//   - europe: the full European map with the standard 43-plant deck
//   - benelux: a compact north-western map for short games
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific configuration
//	gameConfig, err := manager.LoadConfig("europe")
//
//	// Build an engine setup from it
//	setup, err := manager.Setup("europe")
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Unique, positive plant costs and sane fuel requirements
//   - Enough cheap plants to seed the opening market
//   - Edges that reference declared cities
//   - Complete rule tables for every supported player count
package config
