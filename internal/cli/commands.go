package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/prompt"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Kind names a subcommand.
type Kind string

const (
	KindAdd    Kind = "add"
	KindDone   Kind = "done"
	KindUndo   Kind = "undo"
	KindList   Kind = "list"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
	KindBrowse Kind = "browse"
	KindHelp   Kind = "help"
)

// Command is a parsed subcommand.
type Command struct {
	Kind  Kind
	Title string       // add
	Mode  model.Filter // list
}

// Result tells the runner whether the list must be written back.
type Result int

const (
	NoChange Result = iota
	Changed
)

func (r Result) String() string {
	if r == Changed {
		return "changed"
	}
	return "no change"
}

// UsageError is a malformed command line (exit code 2).
type UsageError struct{ Msg string }

func (e *UsageError) Error() string { return e.Msg }

func usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Parse turns the arguments after the root flags into a Command.
func Parse(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, usagef("missing subcommand")
	}
	name, a := args[0], args[1:]

	switch name {
	case "help", "-h", "--help":
		return Command{Kind: KindHelp}, nil

	case "add":
		title := strings.TrimSpace(strings.Join(a, " "))
		if title == "" {
			return Command{}, usagef("usage: todo add <title...>")
		}
		return Command{Kind: KindAdd, Title: title}, nil

	case "list", "ls":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		mode := fs.String("mode", "all", "all, todo or done")
		if err := fs.Parse(a); err != nil {
			return Command{}, usagef("list: %v", err)
		}
		if fs.NArg() > 0 {
			return Command{}, usagef("usage: todo list [--mode all|todo|done]")
		}
		f, err := model.ParseFilter(*mode)
		if err != nil {
			return Command{}, usagef("list: %v", err)
		}
		return Command{Kind: KindList, Mode: f}, nil

	case "done", "undo", "update", "delete", "browse":
		if len(a) != 0 {
			return Command{}, usagef("usage: todo %s (takes no arguments, pick interactively)", name)
		}
		return Command{Kind: Kind(name)}, nil
	}

	return Command{}, usagef("unknown subcommand: %s", name)
}

// Execute runs one command against list. It performs at most one mutation
// and reports whether one happened; cancelling a prompt is NoChange, not an
// error.
func Execute(cmd Command, list *model.TodoList, p prompt.Prompter, out io.Writer) (Result, error) {
	switch cmd.Kind {
	case KindAdd:
		t := list.Add(cmd.Title)
		ui.OK(out, "added "+t.String())
		return Changed, nil

	case KindDone:
		return mark(list, p, out, true)

	case KindUndo:
		return mark(list, p, out, false)

	case KindList:
		renderList(out, list, cmd.Mode)
		return NoChange, nil

	case KindUpdate:
		return update(list, p, out)

	case KindDelete:
		return remove(list, p, out)

	case KindBrowse:
		changed, err := runBrowse(list, p)
		if err != nil {
			return NoChange, err
		}
		if changed {
			return Changed, nil
		}
		return NoChange, nil

	case KindHelp:
		PrintHelp(out)
		return NoChange, nil
	}
	return NoChange, usagef("unknown subcommand: %s", cmd.Kind)
}

func mark(list *model.TodoList, p prompt.Prompter, out io.Writer, done bool) (Result, error) {
	filter, empty, title := model.Pending, "No todos to mark as done", "Select a todo to mark as done"
	if !done {
		filter, empty, title = model.Completed, "No todos to undo done", "Select completed todo to undo done"
	}

	items := list.List(filter)
	if len(items) == 0 {
		ui.Note(out, empty)
		return NoChange, nil
	}
	t, ok, err := pick(p, title, items)
	if err != nil || !ok {
		return cancelled(out, err)
	}
	if err := list.Mark(t.ID, done); err != nil {
		return NoChange, err
	}
	if done {
		ui.OK(out, "done "+t.String())
	} else {
		ui.OK(out, "reopened "+t.String())
	}
	return Changed, nil
}

func update(list *model.TodoList, p prompt.Prompter, out io.Writer) (Result, error) {
	items := list.List(model.All)
	if len(items) == 0 {
		ui.Note(out, "No todos to update")
		return NoChange, nil
	}
	t, ok, err := pick(p, "Select todo to update", items)
	if err != nil || !ok {
		return cancelled(out, err)
	}

	newTitle, ok, err := p.Input("Edit title", t.Title)
	if err != nil || !ok {
		return cancelled(out, err)
	}
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == t.Title {
		ui.Note(out, "Title unchanged")
		return NoChange, nil
	}
	if newTitle == "" {
		return NoChange, fmt.Errorf("update: empty title")
	}

	if err := list.UpdateTitle(t.ID, newTitle); err != nil {
		return NoChange, err
	}
	ui.OK(out, fmt.Sprintf("Todo '%s' updated to %s", t, newTitle))
	return Changed, nil
}

func remove(list *model.TodoList, p prompt.Prompter, out io.Writer) (Result, error) {
	items := list.List(model.All)
	if len(items) == 0 {
		ui.Note(out, "No todos to delete")
		return NoChange, nil
	}
	t, ok, err := pick(p, "Select todo to delete", items)
	if err != nil || !ok {
		return cancelled(out, err)
	}

	yes, err := p.Confirm(fmt.Sprintf("Are you sure you want to delete '%s'?", t.Title))
	if err != nil {
		return NoChange, err
	}
	if !yes {
		ui.Note(out, "Delete cancelled")
		return NoChange, nil
	}

	if err := list.Remove(t.ID); err != nil {
		return NoChange, err
	}
	ui.OK(out, fmt.Sprintf("Deleted '%s'", t))
	return Changed, nil
}

// pick asks the operator for one of items.
func pick(p prompt.Prompter, title string, items []model.Task) (model.Task, bool, error) {
	labels := make([]string, len(items))
	for i, t := range items {
		labels[i] = t.String()
	}
	i, ok, err := p.Select(title, labels)
	if err != nil || !ok {
		return model.Task{}, false, err
	}
	if i < 0 || i >= len(items) {
		return model.Task{}, false, fmt.Errorf("selection %d out of range", i)
	}
	return items[i], true, nil
}

func cancelled(out io.Writer, err error) (Result, error) {
	if err != nil {
		return NoChange, err
	}
	ui.Note(out, "Action cancelled")
	return NoChange, nil
}
