package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"github.com/wricardo/terminal-snake/game/engine"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check game configuration files (defaults to every file in --config-dir)",
		ArgsUsage: "[files...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				if files, err = configFiles(cmd.String("config-dir")); err != nil {
					return err
				}
			}

			w := cmd.Root().Writer
			if w == nil {
				w = os.Stdout
			}
			return validateFiles(w, files)
		},
	}
}

// configFiles lists the config files in dir, sorted
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read config directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && hasConfigExt(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// validateFiles loads every file and reports each result. All failures are
// returned together.
func validateFiles(w io.Writer, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("no config files to validate")
	}

	var errs error
	for _, path := range files {
		cfg, err := engine.LoadGameConfig(path)
		if err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", path, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		walls := "deadly walls"
		if !cfg.WallCrashEndsGame {
			walls = "wrapping walls"
		}
		fmt.Fprintf(w, "ok   %s: %s (%dx%d, %dms, %s)\n", path, cfg.Name, cfg.Width, cfg.Height, cfg.SpeedMs, walls)
	}
	return errs
}
