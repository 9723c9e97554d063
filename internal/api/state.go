// Package api serves the todo list over HTTP with gin.
package api

import (
	"sync"

	"github.com/idilsaglam/todolist/internal/logger"
	"github.com/idilsaglam/todolist/internal/model"
)

// Saver persists the whole list.
type Saver interface {
	Save(*model.TodoList) error
}

// State owns the list shared by all requests. Every operation holds mu for
// both the in-memory change and the file write that follows it.
type State struct {
	mu    sync.Mutex
	todos *model.TodoList
	saver Saver

	// OnSaveError is called when a write fails. The default logs and exits.
	OnSaveError func(error)
}

// NewState wraps todos. A nil list starts empty.
func NewState(todos *model.TodoList, saver Saver) *State {
	if todos == nil {
		todos = model.New()
	}
	s := &State{todos: todos, saver: saver}
	s.OnSaveError = func(err error) {
		logger.Fatal("failed to write todo file", "err", err)
	}
	s.observe()
	return s
}

// persist must be called with mu held.
func (s *State) persist(op string) {
	s.observe()
	if err := s.saver.Save(s.todos); err != nil {
		opsTotal.WithLabelValues(op, "save_error").Inc()
		s.OnSaveError(err)
		return
	}
	opsTotal.WithLabelValues(op, "ok").Inc()
}

func (s *State) observe() {
	done, pending := s.todos.Stats()
	items.WithLabelValues("done").Set(float64(done))
	items.WithLabelValues("pending").Set(float64(pending))
}

func (s *State) List(f model.Filter) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todos.List(f)
}

func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.todos.Len()
}

func (s *State) Add(title string) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.todos.Add(title)
	s.persist("add")
	return t
}

func (s *State) Mark(id uint64, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := "mark_done"
	if !done {
		op = "undo_done"
	}
	if err := s.todos.Mark(id, done); err != nil {
		opsTotal.WithLabelValues(op, "not_found").Inc()
		return err
	}
	s.persist(op)
	return nil
}

func (s *State) UpdateTitle(id uint64, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.todos.UpdateTitle(id, title); err != nil {
		opsTotal.WithLabelValues("update", "not_found").Inc()
		return err
	}
	s.persist("update")
	return nil
}

func (s *State) Remove(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.todos.Remove(id); err != nil {
		opsTotal.WithLabelValues("delete", "not_found").Inc()
		return err
	}
	s.persist("delete")
	return nil
}

// Reset replaces the list with a fresh one; ids start again at 1.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = model.New()
	s.persist("reset")
}
