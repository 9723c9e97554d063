package jsonstore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// Reads are forgiving, writes are not: a file that cannot be used is replaced
// by an empty list, a file that cannot be written is an error.

// DefaultPath is where the list lives unless configured otherwise.
const DefaultPath = "resource/todo.json"

const schemaURL = "todo.schema.json"

//go:embed todo.schema.json
var schemaJSON string

var (
	// ErrMissing means the data file does not exist yet.
	ErrMissing = errors.New("todo file missing")
	// ErrCorrupt means the data file exists but cannot be used.
	ErrCorrupt = errors.New("todo file corrupt")
	// ErrWrite means the list could not be persisted.
	ErrWrite = errors.New("todo file write failed")
)

// WriteError wraps the cause of a failed Save.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }

// Store reads and writes one todo list file.
type Store struct {
	path   string
	log    *log.Logger
	schema *jsonschema.Schema
}

// New returns a store for path. An empty path means DefaultPath.
func New(path string, logger *log.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = log.Default()
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Store{path: path, log: logger.With("path", path), schema: schema}, nil
}

func (s *Store) Path() string { return s.path }

// Load returns the stored list, or a fresh one when the file is missing or
// unusable. It never fails.
func (s *Store) Load() *model.TodoList {
	l, err := s.Read()
	switch {
	case err == nil:
		return l
	case errors.Is(err, ErrMissing):
		s.log.Debug("no todo file yet, starting empty")
	default:
		s.log.Warn("discarding unreadable todo file, starting empty", "err", err)
	}
	return model.New()
}

// Read is the strict form of Load.
func (s *Store) Read() (*model.TodoList, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrMissing
		}
		return nil, fmt.Errorf("%w: read file: %v", ErrCorrupt, err)
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrCorrupt, err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, schemaMessage(err))
	}

	l := model.New()
	if err := json.Unmarshal(b, l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return l, nil
}

// Save overwrites the file with the whole list.
func (s *Store) Save(l *model.TodoList) error {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("json marshal: %w", err)}
	}
	b = append(b, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &WriteError{Path: s.path, Err: fmt.Errorf("mkdir: %w", err)}
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// schemaMessage flattens a schema validation error to its leaf causes.
func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var parts []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			parts = append(parts, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(parts, "; ")
}
