package main

import (
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// setupLogging configures the root logger for the running command and
// returns it. When console is false nothing is written to stderr, which
// play mode needs because the screen owns the terminal.
func setupLogging(cmd *cli.Command, console bool) (log15.Logger, error) {
	lvl := log15.LvlInfo
	if cmd.Bool("debug") {
		lvl = log15.LvlDebug
	}

	var out io.Writer
	tty := false
	if console {
		tty = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		out = os.Stderr
		if tty {
			out = colorable.NewColorableStderr()
		}
	}

	handler, err := buildHandler(lvl, out, tty, cmd.String("log-file"))
	if err != nil {
		return nil, err
	}

	logger := log15.Root()
	logger.SetHandler(handler)
	return logger.New("app", AppName, "cmd", cmd.Name), nil
}

// buildHandler fans records out to the console writer and the log file,
// whichever are set, filtered at lvl
func buildHandler(lvl log15.Lvl, console io.Writer, tty bool, logFile string) (log15.Handler, error) {
	var handlers []log15.Handler

	if console != nil {
		format := log15.LogfmtFormat()
		if tty {
			format = log15.TerminalFormat()
		}
		handlers = append(handlers, log15.StreamHandler(console, format))
	}

	if logFile != "" {
		fileHandler, err := log15.FileHandler(logFile, log15.LogfmtFormat())
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, fileHandler)
	}

	if len(handlers) == 0 {
		return log15.DiscardHandler(), nil
	}
	return log15.LvlFilterHandler(lvl, log15.MultiHandler(handlers...)), nil
}
