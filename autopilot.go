package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/terminal-snake/game/autopilot"
)

func autopilotCommand() *cli.Command {
	return &cli.Command{
		Name:  "autopilot",
		Usage: "let the computer play a session over the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Value:   DefaultAPIURL,
				Usage:   "REST API to play against; an internal one is started if it does not answer",
				Sources: cli.EnvVars("SNAKE_API_URL"),
			},
			&cli.StringFlag{Name: "session", Usage: "resume an existing session instead of creating one"},
			&cli.IntFlag{Name: "attempts", Value: 3, Usage: "runs to play, each after a reset"},
			&cli.IntFlag{Name: "max-moves", Value: 3000, Usage: "moves per run before giving up"},
			&cli.DurationFlag{Name: "delay", Usage: "pause between moves, useful when watching over /ws"},
		},
		Action: runAutopilot,
	}
}

func runAutopilot(ctx context.Context, cmd *cli.Command) error {
	logger, err := setupLogging(cmd, true)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := autopilot.NewClient(cmd.String("api-url"))
	if pingErr := client.Ping(ctx); pingErr != nil {
		logger.Info("no API server found, starting internal HTTP server", "url", cmd.String("api-url"), "err", pingErr)
		svc, err := initializeServices(cmd.String("config-dir"), logger)
		if err != nil {
			return err
		}
		internal, err := startInternalAPI(ctx, svc, logger)
		if err != nil {
			return err
		}
		defer internal.Close()
		client = autopilot.NewClient(internal.baseURL)
	}

	if id := cmd.String("session"); id != "" {
		client.UseSession(id)
	} else {
		session, err := client.CreateSession(ctx, cmd.String("config"))
		if err != nil {
			return err
		}
		logger.Info("session created", "session", session.ID, "config", session.ConfigName)
	}

	report, err := autopilot.NewRunner(client, logger).Run(ctx, autopilot.Options{
		Attempts: cmd.Int("attempts"),
		MaxMoves: cmd.Int("max-moves"),
		Delay:    cmd.Duration("delay"),
	})
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, a := range report.Attempts {
		fmt.Fprintf(w, "attempt %d: score %d, length %d, %d moves", a.Number, a.Score, a.Length, a.Moves)
		if a.Reason != "" {
			fmt.Fprintf(w, " (hit %s)", a.Reason)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "session %s best score %d\n", report.SessionID, report.BestScore)
	return nil
}
