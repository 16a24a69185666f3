// Command snake plays Snake in the terminal and serves it to remote players.
//
// Commands:
//  1. "play" (default) – runs the game in the current terminal
//  2. "serve" – runs the HTTP server exposing the REST API, WebSocket updates and an /mcp endpoint
//  3. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  4. "validate" – checks game configuration files
//  5. "autopilot" – lets the computer play a session over the REST API
//
// Flags read their defaults from the environment, and a .env file in the
// working directory is loaded first when present.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/terminal-snake/game/config"
	"github.com/wricardo/terminal-snake/game/engine"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "snake"
)

// Default values for the server commands
const (
	DefaultPort            = 8080
	DefaultHost            = "localhost"
	DefaultSessionTTL      = 24 * time.Hour
	DefaultCleanupInterval = time.Hour
	DefaultAPIURL          = "http://localhost:8080"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log15.Root().Crit("snake failed", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Global flags are visible to every subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:           AppName,
		Usage:          "classic Snake for the terminal, with a REST/WebSocket/MCP server mode",
		Version:        Version,
		DefaultCommand: "play",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "directory containing game configurations",
				Value:   "configs",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config ID in the config directory, or a path to a .json/.yaml file",
				Sources: cli.EnvVars("SNAKE_CONFIG"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "also write logs to this file (play mode logs nowhere else)",
				Sources: cli.EnvVars("SNAKE_LOG_FILE"),
			},
		},
		Commands: []*cli.Command{
			playCommand(),
			serveCommand(),
			mcpCommand(),
			validateCommand(),
			autopilotCommand(),
		},
	}
}

// resolveGameConfig picks the board for play mode. name may be a config
// file path, a config ID inside configDir, or empty for the default board.
// A missing config directory falls back to the built-in classic board when
// no name was given.
func resolveGameConfig(configDir, name string, logger log15.Logger) (*engine.GameConfig, error) {
	if name != "" && hasConfigExt(name) {
		if _, err := os.Stat(name); err == nil {
			return engine.LoadGameConfig(name)
		}
	}

	manager, err := config.NewManager(configDir, logger)
	if err != nil {
		if name == "" {
			logger.Warn("config directory unavailable, using built-in board", "dir", configDir, "err", err)
			return engine.DefaultGameConfig(), nil
		}
		return nil, err
	}

	if name == "" {
		return manager.GetDefault(), nil
	}
	return manager.LoadConfig(name)
}

func hasConfigExt(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range config.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
