package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/prompt"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Store loads and persists the whole list.
type Store interface {
	Load() *model.TodoList
	Save(*model.TodoList) error
}

// Options carries what a run needs. Out and Err default to the process
// streams; Prompter defaults to the terminal.
type Options struct {
	Store    Store
	Prompter prompt.Prompter
	Out, Err io.Writer
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Prompter == nil {
		opt.Prompter = prompt.Terminal{}
	}

	cmd, err := Parse(args)
	if err != nil {
		ui.Fail(opt.Err, err.Error())
		fmt.Fprintln(opt.Err)
		PrintHelp(opt.Err)
		return 2
	}
	if cmd.Kind == KindHelp {
		PrintHelp(opt.Out)
		return 0
	}

	list := opt.Store.Load()
	res, err := Execute(cmd, list, opt.Prompter, opt.Out)
	if err != nil {
		ui.Fail(opt.Err, string(cmd.Kind)+": "+err.Error())
		var ue *UsageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	if res == Changed {
		if err := opt.Store.Save(list); err != nil {
			ui.Fail(opt.Err, "save: "+err.Error())
			return 1
		}
	}
	return 0
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - a tiny CLI

Usage:
  todo [flags] <subcommand> [args]

Subcommands:
  add <title...>                  Add a new item (title can be multiple words)
  done                            Pick a pending item and mark it done
  undo                            Pick a completed item and mark it pending again
  list [--mode all|todo|done]     List items
  update                          Pick an item and edit its title
  delete                          Pick an item and delete it after confirmation
  browse                          Interactive list (space toggle, a add, e edit, d delete)

Flags:
  -data <path>        todo file (default resource/todo.json)
  -config <path>      TOML config file
  -theme <name>       classic, neon or mono
  -log-level <level>  debug, info, warn, error

Examples:
  todo add "Buy milk"
  todo list --mode todo
  todo done
  todo delete
`)
}
