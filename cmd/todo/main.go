package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logger"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	// The CLI only reports warnings unless asked otherwise.
	level := cfg.LogLevel
	if cfg.LogLevel == config.DefaultLogLevel && !explicitLogLevel(fs) && os.Getenv("TODO_LOG_LEVEL") == "" {
		level = "warn"
	}
	log := logger.Init(level, cfg.LogFormat, os.Stderr)
	ui.SetTheme(cfg.Theme)

	store, err := jsonstore.New(cfg.DataFile, log)
	if err != nil {
		log.Error("opening store", "err", err)
		os.Exit(1)
	}

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}
	os.Exit(cli.Run(args, cli.Options{Store: store}))
}

func explicitLogLevel(fs *flag.FlagSet) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "log-level" {
			set = true
		}
	})
	return set
}
