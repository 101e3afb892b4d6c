package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/amirbrooks/task-cli/internal/config"
	"github.com/amirbrooks/task-cli/internal/store"
)

func (e *env) renderTask(task store.Task, message string) int {
	if e.output() == config.OutputJSON {
		return e.writeJSON(map[string]any{"task": task})
	}
	if !e.gf.Quiet {
		fmt.Fprintln(e.stdout, message)
	}
	return ExitOK
}

func (e *env) renderList(tasks []store.Task, filter string) int {
	switch e.output() {
	case config.OutputJSON:
		return e.writeJSON(map[string]any{"tasks": tasks})
	case config.OutputPlain:
		fmt.Fprintln(e.stdout, "ID\tST\tDESCRIPTION\tSTATUS")
		for _, t := range tasks {
			fmt.Fprintf(e.stdout, "%d\t%s\t%s\t%s\n", t.ID, t.StatusIndicator(e.ascii()), t.Description, t.Status)
		}
		return ExitOK
	}

	if len(tasks) == 0 {
		if filter != "" {
			fmt.Fprintf(e.stdout, "No tasks found with status: %s\n", filter)
		} else {
			fmt.Fprintln(e.stdout, "No tasks found.")
		}
		return ExitOK
	}

	w := tabwriter.NewWriter(e.stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tST\tDESCRIPTION\tSTATUS")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.StatusIndicator(e.ascii()), t.Description, t.Status)
	}
	_ = w.Flush()
	fmt.Fprintf(e.stdout, "\nTotal: %d task(s)\n", len(tasks))
	return ExitOK
}

func (e *env) writeJSON(payload any) int {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		fmt.Fprintf(e.stderr, "%s: %v\n", e.cmd.name, err)
		return ExitInternal
	}
	return ExitOK
}
