package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirbrooks/task-cli/internal/store"
)

func cmdAdd(e *env, args []string) int {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return e.usage("description is required")
	}
	s := e.openStore()
	task, err := s.Add(description)
	if err != nil {
		return e.fail(err)
	}
	if code := e.save(s); code != ExitOK {
		return code
	}
	return e.renderTask(task, fmt.Sprintf("Task added successfully (ID: %d)", task.ID))
}

func cmdUpdate(e *env, args []string) int {
	id, err := store.ParseID(args[0])
	if err != nil {
		return e.usage(err.Error())
	}
	description := strings.TrimSpace(strings.Join(args[1:], " "))
	if description == "" {
		return e.usage("description is required")
	}
	s := e.openStore()
	task, err := s.Update(id, description)
	if err != nil {
		return e.fail(err)
	}
	if code := e.save(s); code != ExitOK {
		return code
	}
	return e.renderTask(task, fmt.Sprintf("Task %d updated successfully", task.ID))
}

func cmdDelete(e *env, args []string) int {
	id, err := store.ParseID(args[0])
	if err != nil {
		return e.usage(err.Error())
	}
	s := e.openStore()
	task, err := s.Delete(id)
	if err != nil {
		return e.fail(err)
	}
	if code := e.save(s); code != ExitOK {
		return code
	}
	return e.renderTask(task, fmt.Sprintf("Task %d deleted successfully", task.ID))
}

func markCommand(status store.Status) func(e *env, args []string) int {
	return func(e *env, args []string) int {
		id, err := store.ParseID(args[0])
		if err != nil {
			return e.usage(err.Error())
		}
		s := e.openStore()
		task, err := s.Mark(id, status)
		if err != nil {
			return e.fail(err)
		}
		if code := e.save(s); code != ExitOK {
			return code
		}
		return e.renderTask(task, fmt.Sprintf("Task %d marked as %s", task.ID, task.Status))
	}
}

func cmdList(e *env, args []string) int {
	filter := ""
	if len(args) > 0 {
		st, err := store.ParseStatus(args[0])
		if err != nil {
			fmt.Fprintf(e.stderr, "list: invalid status %q (use %s)\n", strings.TrimSpace(args[0]), store.StatusNames())
			return ExitUsage
		}
		filter = string(st)
	}
	s := e.openStore()
	tasks, err := s.List(filter)
	if err != nil {
		return e.fail(err)
	}
	return e.renderList(tasks, filter)
}

// openStore never fails: an unreadable file is reported and the command
// continues with an empty collection.
func (e *env) openStore() *store.Store {
	path := e.cfg.StoreFile(e.gf.File)
	s, err := store.Open(path)
	e.debugf("store: %s (%d tasks)", s.Path, s.Len())
	if err != nil {
		fmt.Fprintf(e.stderr, "%s: warning: %v; starting with an empty task list\n", progName, err)
	}
	return s
}

func (e *env) save(s *store.Store) int {
	if err := s.Save(); err != nil {
		fmt.Fprintf(e.stderr, "%s: could not save %s: %v\n", e.cmd.name, s.Path, err)
		return ExitInternal
	}
	e.debugf("saved %d tasks to %s", s.Len(), s.Path)
	return ExitOK
}

func (e *env) usage(msg string) int {
	fmt.Fprintf(e.stderr, "%s: %s\n", e.cmd.name, msg)
	fmt.Fprintf(e.stderr, "Usage: %s %s\n", progName, e.cmd.usage)
	return ExitUsage
}

func (e *env) fail(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintf(e.stderr, "%s: %v\n", e.cmd.name, err)
		return ExitNotFound
	case errors.Is(err, store.ErrInvalid):
		return e.usage(err.Error())
	default:
		fmt.Fprintf(e.stderr, "%s: %v\n", e.cmd.name, err)
		return ExitInternal
	}
}
