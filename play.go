package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/wricardo/terminal-snake/game/engine"
	"github.com/wricardo/terminal-snake/game/loop"
	"github.com/wricardo/terminal-snake/transport/terminal"
)

func playCommand() *cli.Command {
	return &cli.Command{
		Name:   "play",
		Usage:  "play in the current terminal (arrows or WASD to steer, q or Esc to quit)",
		Action: runPlay,
	}
}

func runPlay(ctx context.Context, cmd *cli.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return cli.Exit("play needs an interactive terminal; try `snake serve` instead", 1)
	}

	logger, err := setupLogging(cmd, false)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	gameConfig, err := resolveGameConfig(cmd.String("config-dir"), cmd.String("config"), logger)
	if err != nil {
		return fmt.Errorf("load game config: %w", err)
	}

	eng, err := engine.NewEngine(gameConfig)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	screen, err := terminal.New(logger)
	if err != nil {
		logger.Crit("terminal init failed", "err", err)
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := loop.New(eng, screen, logger).Run(ctx)
	// Restore the terminal before printing the summary
	screen.Close()
	if err != nil {
		logger.Crit("terminal failure", "err", err)
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	if result.Message != "" {
		fmt.Fprintln(w, result.Message)
	}
	fmt.Fprintf(w, "Score: %d  Length: %d  Ticks: %d\n", result.Score, result.Length, result.Ticks)
	return nil
}
