package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid")
	ErrCorrupt  = errors.New("corrupt store")
	timeNow     = func() time.Time { return time.Now().UTC() }
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// ParseStatus accepts a status name as typed by a user.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.TrimSpace(strings.ToLower(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: status %q (use %s)", ErrInvalid, strings.TrimSpace(s), StatusNames())
	}
	return st, nil
}

// StatusNames returns the valid statuses joined with "|".
func StatusNames() string {
	names := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, "|")
}

// Task is stored by value; the JSON field order is the on-disk order.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t Task) validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: task id %d is not positive", ErrInvalid, t.ID)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: task %d has an empty description", ErrInvalid, t.ID)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: task %d has status %q", ErrInvalid, t.ID, t.Status)
	}
	return nil
}

func (t Task) StatusIndicator(ascii bool) string {
	switch t.Status {
	case StatusTodo:
		return "[ ]"
	case StatusInProgress:
		return "[~]"
	case StatusDone:
		if ascii {
			return "[x]"
		}
		return "[✓]"
	default:
		return "[?]"
	}
}

// ParseID converts a user supplied id. Only positive integers are accepted.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: task id is required", ErrInvalid)
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: task id %q is not a positive number", ErrInvalid, s)
	}
	return id, nil
}
