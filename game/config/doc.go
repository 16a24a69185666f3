// Package config provides configuration management for terminal Snake.
//
// The config package handles:
//   - Loading game configurations from JSON and YAML files
//   - Configuration validation through the engine's rules
//   - Default configuration selection
//   - Configuration discovery, caching and listing
//
// Configuration Format:
//
// Game configurations are stored as .json, .yaml or .yml files in the
// configs directory. Each configuration defines:
//   - Board width and height, walls included
//   - Initial snake head, body segments and food position
//   - Tick speed in milliseconds and the starting direction
//   - Whether hitting the wall ends the game or wraps the snake around
//   - One-character glyphs for each cell type and player messages
//
// The default is classic when present, otherwise the first valid file in the
// directory, otherwise engine.DefaultGameConfig.
//
// Usage:
//
//	manager, err := config.NewManager("configs", logger)
//	if err != nil {
//		return err
//	}
//
//	gameConfig, err := manager.LoadConfig("wrap")
//	configs, err := manager.ListConfigs()
package config
