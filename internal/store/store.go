package store

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Store owns the task collection for one invocation.
type Store struct {
	Path    string
	tasks   []Task
	corrupt bool
}

// Open loads the store at path. It always returns a usable store: when the
// file cannot be read the collection starts empty and the read error is
// returned alongside it so the caller can report it.
func Open(path string) (*Store, error) {
	s := &Store{Path: expandHome(strings.TrimSpace(path))}
	tasks, err := Load(s.Path)
	if err != nil {
		s.tasks = []Task{}
		s.corrupt = errors.Is(err, ErrCorrupt)
		return s, err
	}
	s.tasks = tasks
	return s, nil
}

// New returns a store over an in-memory collection. Tasks are copied.
func New(path string, tasks []Task) *Store {
	return &Store{Path: path, tasks: append([]Task{}, tasks...)}
}

// Save writes the whole collection. A store opened from a corrupt file moves
// that file aside before the first write.
func (s *Store) Save() error {
	if s.corrupt {
		if _, err := quarantine(s.Path); err != nil {
			return fmt.Errorf("preserve corrupt store: %w", err)
		}
		s.corrupt = false
	}
	return Save(s.Path, s.tasks)
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []Task {
	return append([]Task{}, s.tasks...)
}

func (s *Store) Len() int { return len(s.tasks) }

// NextID is one more than the largest id present, or 1 when empty.
func (s *Store) NextID() int {
	highest := 0
	for _, t := range s.tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

func (s *Store) Find(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	return s.tasks[i], nil
}

func (s *Store) Add(description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, fmt.Errorf("%w: description is required", ErrInvalid)
	}
	now := timeNow()
	t := Task{
		ID:          s.NextID(),
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *Store) Update(id int, description string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, fmt.Errorf("%w: description is required", ErrInvalid)
	}
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	t := s.tasks[i]
	t.Description = description
	t.UpdatedAt = touched(t.UpdatedAt)
	s.tasks[i] = t
	return t, nil
}

func (s *Store) Delete(id int) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	t := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return t, nil
}

func (s *Store) Mark(id int, status Status) (Task, error) {
	if !status.Valid() {
		return Task{}, fmt.Errorf("%w: status %q (use %s)", ErrInvalid, status, StatusNames())
	}
	i := s.index(id)
	if i < 0 {
		return Task{}, notFound(id)
	}
	t := s.tasks[i]
	t.Status = status
	t.UpdatedAt = touched(t.UpdatedAt)
	s.tasks[i] = t
	return t, nil
}

// List returns every task, or only those with the given status when filter
// is non-empty. An unknown filter is ErrInvalid and yields no tasks.
func (s *Store) List(filter string) ([]Task, error) {
	if strings.TrimSpace(filter) == "" {
		return s.Tasks(), nil
	}
	status, err := ParseStatus(filter)
	if err != nil {
		return nil, err
	}
	out := []Task{}
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) index(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// touched never moves a timestamp backwards, even if the clock does.
func touched(prev time.Time) time.Time {
	now := timeNow()
	if now.Before(prev) {
		return prev
	}
	return now
}

func notFound(id int) error {
	return fmt.Errorf("%w: task %d", ErrNotFound, id)
}
