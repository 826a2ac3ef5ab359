// Command go2048 plays 2048 in the terminal.
//
// Commands:
//  1. "play" (default) – full-screen game on the current terminal
//  2. "mcp" – MCP stdio server so an agent can create and play sessions
//  3. "configs" – list the available presentation configs
//  4. "validate" – check config files
//
// Settings come from GAME2048_* environment variables (a .env file is loaded
// first) and can be overridden with flags.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/go2048/game/config"
	"github.com/wricardo/go2048/game/engine"
	"github.com/wricardo/go2048/game/service"
	"github.com/wricardo/go2048/game/session"
	"github.com/wricardo/go2048/transport/mcp"
	"github.com/wricardo/go2048/transport/terminal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "2048"
)

func main() {
	loadDotEnv()

	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(settings, os.Stdout).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the command tree. settings provide the flag defaults.
func newCommand(settings Settings, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "go2048",
		Usage:     "Slide and merge tiles to reach 2048",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: settings.ConfigDir,
				Usage: "Directory containing game configurations",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   settings.Config,
				Usage:   "Config to play with (default: classic)",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Value: settings.Seed,
				Usage: "Random seed for tile spawns, 0 picks one at random",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Value: settings.Debug,
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Value: settings.LogFile,
				Usage: "Log file used with --debug in play mode",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPlay(ctx, settingsFrom(cmd), stdout)
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "Play in the terminal (default)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runPlay(ctx, settingsFrom(cmd), stdout)
				},
			},
			{
				Name:  "mcp",
				Usage: "Serve game sessions as MCP tools over stdio",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runMCP(ctx, settingsFrom(cmd))
				},
			},
			{
				Name:  "configs",
				Usage: "List available configurations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return listConfigs(settingsFrom(cmd), stdout)
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate config files",
				ArgsUsage: "[file or directory...]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					targets := cmd.Args().Slice()
					if len(targets) == 0 {
						targets = []string{settingsFrom(cmd).ConfigDir}
					}
					return validateConfigs(targets, stdout)
				},
			},
			{
				Name:  "version",
				Usage: "Show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(stdout, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

// settingsFrom applies flag values on top of the environment settings
func settingsFrom(cmd *cli.Command) Settings {
	return Settings{
		Seed:      cmd.Int64("seed"),
		ConfigDir: cmd.String("config-dir"),
		Config:    cmd.String("config"),
		Debug:     cmd.Bool("debug"),
		LogFile:   cmd.String("log-file"),
	}
}

// initializeServices wires the config and session managers into a game service
func initializeServices(s Settings) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(s.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	if s.Config != "" {
		if err := configManager.SetDefault(s.Config); err != nil {
			return nil, nil, fmt.Errorf("config %q: %w", s.Config, err)
		}
	}

	sources := session.RandomSources()
	if s.Seed != 0 {
		sources = session.SeededSources(uint64(s.Seed))
	}

	sessionManager := session.NewManager(sources)
	return service.NewGameService(sessionManager, configManager), sessionManager, nil
}

// runPlay runs one full-screen game and prints the final result once the
// terminal is restored.
func runPlay(ctx context.Context, s Settings, stdout io.Writer) error {
	logFile, err := setupLogging(s.Debug, s.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	log.Printf("Starting %s v%s (seed %d, config dir %s)", AppName, Version, s.Seed, s.ConfigDir)

	games, _, err := initializeServices(s)
	if err != nil {
		return err
	}

	info, err := games.CreateSession(ctx, "")
	if err != nil {
		return err
	}
	defer games.DeleteSession(context.Background(), info.ID)

	if err := playSession(ctx, games, info.ID); err != nil {
		return err
	}

	state, err := games.GetGameState(ctx, info.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, summary(state))
	return nil
}

func playSession(ctx context.Context, games service.GameService, sessionID string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	return terminal.NewLoop(games, screen).Run(ctx, sessionID)
}

// summary is the line printed after the terminal is restored
func summary(state *engine.GameState) string {
	p := message.NewPrinter(language.English)
	result := "Game over"
	switch {
	case state.Won:
		result = "You won"
	case !state.GameOver:
		result = "Quit"
	}
	return p.Sprintf("%s: score %d in %d steps, max tile %d", result, state.Score, state.Steps, state.MaxTile)
}

// runMCP serves MCP over stdio until the client disconnects
func runMCP(ctx context.Context, s Settings) error {
	setupStderrLogging(s.Debug)
	log.Printf("Starting %s v%s MCP stdio server", AppName, Version)

	games, sessions, err := initializeServices(s)
	if err != nil {
		return err
	}

	go sessionCleanupRoutine(ctx, sessions)

	return mcp.NewServer(games, Version).ServeStdio()
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within a day.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := manager.CleanupExpiredSessions(24 * time.Hour)
			if removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}

func listConfigs(s Settings, stdout io.Writer) error {
	configManager, err := config.NewManager(s.ConfigDir)
	if err != nil {
		return err
	}

	configs, err := configManager.ListConfigs()
	if err != nil {
		return err
	}

	for _, c := range configs {
		source := c.Filename
		if c.BuiltIn {
			source = "built-in"
		}
		fmt.Fprintf(stdout, "%-16s %-20s %-14s %s\n", c.ConfigID, c.Name, source, c.Description)
	}
	return nil
}

func validateConfigs(targets []string, stdout io.Writer) error {
	var results []config.ValidationResult
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", target, err)
		}
		if !info.IsDir() {
			results = append(results, config.ValidateFile(target))
			continue
		}
		dirResults, err := config.ValidateDir(target)
		if err != nil {
			return err
		}
		results = append(results, dirResults...)
	}

	invalid := 0
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(stdout, "✓ %s\n", r.File)
			continue
		}
		invalid++
		fmt.Fprintf(stdout, "✗ %s\n", r.File)
		for _, e := range r.Errors {
			fmt.Fprintf(stdout, "    - %s\n", e)
		}
	}

	fmt.Fprintf(stdout, "\n%d checked, %d invalid\n", len(results), invalid)
	if invalid > 0 {
		return fmt.Errorf("%d invalid config(s)", invalid)
	}
	return nil
}
