// Package model holds the todo list domain: tasks, the ordered list that owns
// them, and the filters used to view it. It does no I/O.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Task is a single todo entry. ID is assigned by the owning TodoList.
type Task struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

func (t Task) String() string {
	return fmt.Sprintf("[%d] %s", t.ID, t.Title)
}

// Filter selects a view over the list.
type Filter int

const (
	All Filter = iota
	Pending
	Completed
)

// ParseFilter maps the words used by the CLI and the HTTP API
// ("all", "todo", "done") to a Filter. An empty word means All.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "todo", "pending":
		return Pending, nil
	case "done", "completed":
		return Completed, nil
	}
	return All, fmt.Errorf("unknown mode %q (want all, todo or done)", s)
}

func (f Filter) String() string {
	switch f {
	case Pending:
		return "todo"
	case Completed:
		return "done"
	default:
		return "all"
	}
}

func (f Filter) match(t Task) bool {
	switch f {
	case Pending:
		return !t.Done
	case Completed:
		return t.Done
	default:
		return true
	}
}

// NotFoundError is returned when no task has the requested id.
type NotFoundError struct {
	ID uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("todo '%d' is not found", e.ID)
}

// ErrInvalidList reports a decoded list that breaks the id invariants.
var ErrInvalidList = errors.New("invalid todo list")

// TodoList is an ordered collection of tasks plus the next id to hand out.
// Ids are unique, below nextID, and never reused after removal.
// A TodoList is not safe for concurrent use.
type TodoList struct {
	items  []Task
	nextID uint64
}

// New returns an empty list whose first task will get id 1.
func New() *TodoList {
	return &TodoList{items: []Task{}, nextID: 1}
}

// Add appends a pending task and returns it.
func (l *TodoList) Add(title string) Task {
	t := Task{ID: l.nextID, Title: title}
	l.nextID++
	l.items = append(l.items, t)
	return t
}

// Mark sets the done flag of the task with the given id.
func (l *TodoList) Mark(id uint64, done bool) error {
	i := l.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	l.items[i].Done = done
	return nil
}

// UpdateTitle replaces the title of the task with the given id, even when it
// is unchanged.
func (l *TodoList) UpdateTitle(id uint64, title string) error {
	i := l.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	l.items[i].Title = title
	return nil
}

// Remove deletes the task with the given id, keeping the order of the rest.
func (l *TodoList) Remove(id uint64) error {
	i := l.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// List returns copies of the tasks matching f, in insertion order.
func (l *TodoList) List(f Filter) []Task {
	out := make([]Task, 0, len(l.items))
	for _, t := range l.items {
		if f.match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the task with the given id.
func (l *TodoList) Get(id uint64) (Task, bool) {
	i := l.index(id)
	if i < 0 {
		return Task{}, false
	}
	return l.items[i], true
}

func (l *TodoList) Len() int { return len(l.items) }

// NextID is the id the next Add will assign.
func (l *TodoList) NextID() uint64 { return l.nextID }

// Stats counts completed and pending tasks.
func (l *TodoList) Stats() (done, pending int) {
	for _, t := range l.items {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func (l *TodoList) index(id uint64) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// wireList is the on-disk shape: {"items": [...], "next_id": n}.
type wireList struct {
	Items  []Task `json:"items"`
	NextID uint64 `json:"next_id"`
}

func (l *TodoList) MarshalJSON() ([]byte, error) {
	items := l.items
	if items == nil {
		items = []Task{}
	}
	return json.Marshal(wireList{Items: items, NextID: l.nextID})
}

// UnmarshalJSON decodes the on-disk shape and rejects lists whose ids are
// duplicated or not below next_id.
func (l *TodoList) UnmarshalJSON(b []byte) error {
	var w wireList
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.NextID == 0 {
		return fmt.Errorf("%w: next_id must be at least 1", ErrInvalidList)
	}
	seen := make(map[uint64]struct{}, len(w.Items))
	for _, t := range w.Items {
		if t.ID >= w.NextID {
			return fmt.Errorf("%w: id %d is not below next_id %d", ErrInvalidList, t.ID, w.NextID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidList, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	if w.Items == nil {
		w.Items = []Task{}
	}
	l.items = w.Items
	l.nextID = w.NextID
	return nil
}
