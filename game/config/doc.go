// Package config provides board preset management for the Snake game.
//
// The config package handles:
//   - Loading presets from JSON files
//   - Preset validation
//   - Default preset selection
//   - Preset discovery and listing
//
// Configuration Format:
//
// Presets are stored as JSON files in the configs directory:
//
//	{
//	  "name": "classic",
//	  "description": "Classic 20x20 board",
//	  "width": 20,
//	  "height": 20,
//	  "movement_cooldown_seconds": 0.3
//	}
//
// The file name without .json is the config_id used for session creation.
//
// Available Configurations:
//
// The shipped presets cover the selectable board sizes:
//   - small: 15x15
//   - classic: 20x20 (default)
//   - medium: 25x25
//   - large: 30x30
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("small")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// When classic.json is missing the manager falls back to the first valid
// preset in the directory, then to a built-in 20x20 board.
package config
