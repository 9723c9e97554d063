// Package prompt provides the interactive selection, text input and
// confirmation used by the CLI. Commands depend on the Prompter interface so
// tests can script the answers.
package prompt

import "errors"

// Prompter asks the operator to pick, type or confirm.
//
// Select returns ok=false when the operator backs out. Input returns the
// edited line, starting from initial, or ok=false on cancel. Confirm
// defaults to no.
type Prompter interface {
	Select(prompt string, items []string) (index int, ok bool, err error)
	Input(prompt, initial string) (value string, ok bool, err error)
	Confirm(prompt string) (bool, error)
}

// ErrNoItems is returned by Select when there is nothing to choose from.
var ErrNoItems = errors.New("nothing to select")
