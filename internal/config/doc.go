// Package config provides configuration management for tocadiscos.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Environment overrides with the TOCADISCOS_ prefix
//   - Default configuration values
//   - Resolving table, history, index and audio locations
//
// # Loading
//
//	settings, err := config.Load("tocadiscos.json")
//	// Uses defaults if the file doesn't exist
//
// Any field can be overridden from the environment:
//
//	TOCADISCOS_DATA_DIR=/srv/label tocadiscos report
//
// # Saving Settings
//
//	settings.DefaultRoyaltyPercentage = 15
//	err := settings.Save("tocadiscos.json")
package config
