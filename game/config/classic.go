package config

import "github.com/wricardo/go2048/game/service"

// ClassicName is the id of the built-in configuration
const ClassicName = "classic"

// Classic returns the built-in configuration used when no config files exist
func Classic() *service.GameConfig {
	return &service.GameConfig{
		Name:        "Classic",
		Description: "The original 2048: WASD or arrow keys, warm tile colours",
		Messages: service.Messages{
			Welcome:        "Join the tiles, get to 2048!",
			Victory:        "YOU WIN!",
			ContinuePrompt: "Continue playing? (y/n)",
			GameOver:       "GAME OVER!",
			Help:           "Use W/A/S/D or arrows to move, R for a new game, Q to quit",
			NoChange:       "Nothing moved",
		},
		KeyBindings: map[string]string{
			"w": service.ActionUp,
			"s": service.ActionDown,
			"a": service.ActionLeft,
			"d": service.ActionRight,
			"q": service.ActionQuit,
			"r": service.ActionNewGame,
		},
		Palette: map[string]service.TileColors{
			service.PaletteEmpty:   {Foreground: "#776e65", Background: "#cdc1b4"},
			service.PaletteDefault: {Foreground: "#f9f6f2", Background: "#3c3a32"},
			"2":                    {Foreground: "#776e65", Background: "#eee4da"},
			"4":                    {Foreground: "#776e65", Background: "#ede0c8"},
			"8":                    {Foreground: "#f9f6f2", Background: "#f2b179"},
			"16":                   {Foreground: "#f9f6f2", Background: "#f59563"},
			"32":                   {Foreground: "#f9f6f2", Background: "#f67c5f"},
			"64":                   {Foreground: "#f9f6f2", Background: "#f65e3b"},
			"128":                  {Foreground: "#f9f6f2", Background: "#edcf72"},
			"256":                  {Foreground: "#f9f6f2", Background: "#edcc61"},
			"512":                  {Foreground: "#f9f6f2", Background: "#edc850"},
			"1024":                 {Foreground: "#f9f6f2", Background: "#edc53f"},
			"2048":                 {Foreground: "#f9f6f2", Background: "#edc22e"},
		},
	}
}
