// Package config provides configuration management for the 2048 game.
//
// The config package handles:
//   - Loading presentation configs from JSON files
//   - Validation of key bindings and tile palettes
//   - The built-in classic config and default selection
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are JSON files in the configs directory. They only
// change how a game looks and is controlled; board size and the winning tile
// are fixed. Each configuration defines:
//   - Messages shown on victory, game over and in the help line
//   - Key bindings from a single lowercase key to an action
//     (up, down, left, right, quit, new_game)
//   - A palette from tile value to foreground and background colours
//
// Example:
//
//	{
//	  "name": "Vim",
//	  "key_bindings": {"k": "up", "j": "down", "h": "left", "l": "right", "q": "quit"},
//	  "palette": {"2": {"fg": "black", "bg": "#eee4da"}}
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("vim")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// A classic.json file overrides the built-in classic config. When the
// directory is missing, classic is the only config available.
package config
