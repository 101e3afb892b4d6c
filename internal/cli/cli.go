package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirbrooks/task-cli/internal/config"
	"github.com/amirbrooks/task-cli/internal/store"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitInternal = 10
)

const progName = "task-cli"

type GlobalFlags struct {
	File    string
	Config  string
	JSON    bool
	Plain   bool
	ASCII   bool
	Quiet   bool
	Verbose bool
}

// command is one entry of the dispatch table. minArgs is checked before the
// handler runs, so handlers can index args[:minArgs] freely.
type command struct {
	name    string
	usage   string
	minArgs int
	maxArgs int // -1 for no limit
	run     func(e *env, args []string) int
}

var commands = []command{
	{name: "add", usage: `add "<description>"`, minArgs: 1, maxArgs: -1, run: cmdAdd},
	{name: "update", usage: `update <id> "<description>"`, minArgs: 2, maxArgs: -1, run: cmdUpdate},
	{name: "delete", usage: "delete <id>", minArgs: 1, maxArgs: 1, run: cmdDelete},
	{name: "mark-todo", usage: "mark-todo <id>", minArgs: 1, maxArgs: 1, run: markCommand(store.StatusTodo)},
	{name: "mark-in-progress", usage: "mark-in-progress <id>", minArgs: 1, maxArgs: 1, run: markCommand(store.StatusInProgress)},
	{name: "mark-done", usage: "mark-done <id>", minArgs: 1, maxArgs: 1, run: markCommand(store.StatusDone)},
	{name: "list", usage: "list [todo|in-progress|done]", minArgs: 0, maxArgs: 1, run: cmdList},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// env carries everything a handler needs for one invocation.
type env struct {
	cmd    command
	gf     GlobalFlags
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
}

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "%s: unexpected error: %v\n", progName, r)
			code = ExitInternal
		}
	}()

	gf, rest, err := extractGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return ExitUsage
	}

	if len(rest) == 0 {
		printHelp(stdout)
		return ExitOK
	}

	name := rest[0]
	cmdArgs := rest[1:]

	switch name {
	case "help", "--help", "-h":
		printHelp(stdout)
		return ExitOK
	}

	c, ok := lookupCommand(name)
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n", name)
		fmt.Fprintf(stderr, "Run '%s help' for usage.\n", progName)
		return ExitUsage
	}
	if len(cmdArgs) < c.minArgs || (c.maxArgs >= 0 && len(cmdArgs) > c.maxArgs) {
		fmt.Fprintf(stderr, "Usage: %s %s\n", progName, c.usage)
		return ExitUsage
	}

	cfgPath := config.Path(gf.Config)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return ExitUsage
	}

	e := &env{cmd: c, gf: gf, cfg: cfg, stdout: stdout, stderr: stderr}
	if cfg.Source != "" {
		e.debugf("config: %s", cfg.Source)
	} else {
		e.debugf("config: defaults (%s not found)", cfgPath)
	}
	return c.run(e, cmdArgs)
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `%[1]s - local task tracker

Usage:
  %[1]s [global flags] <command> [args]

Global flags:
  --file <path>    Task file (default: tasks.json, TASK_CLI_FILE, or config "file")
  --config <path>  Config file (default: ~/.task-cli/config.yaml or TASK_CLI_CONFIG)
  --json           JSON output
  --plain          TSV output
  --ascii          ASCII status indicators
  --quiet          Suppress success messages
  --verbose        Print diagnostics to stderr

Commands:
  add "<description>"
  update <id> "<description>"
  delete <id>
  mark-todo <id>
  mark-in-progress <id>
  mark-done <id>
  list [todo|in-progress|done]
  help

Statuses:
  todo|in-progress|done
`, progName)
}

func extractGlobalFlags(args []string) (GlobalFlags, []string, error) {
	// Allow flags anywhere by scanning and stripping known globals.
	gf := GlobalFlags{}
	out := make([]string, 0, len(args))
	skip := 0

	for i := 0; i < len(args); i++ {
		if skip > 0 {
			skip--
			continue
		}
		a := args[i]
		if a == "--" {
			out = append(out, args[i+1:]...)
			break
		}
		if name, value, ok := strings.Cut(a, "="); ok && (name == "--file" || name == "--config") {
			if name == "--file" {
				gf.File = value
			} else {
				gf.Config = value
			}
			continue
		}
		switch a {
		case "--file":
			if i+1 >= len(args) {
				return gf, nil, errors.New("--file requires a value")
			}
			gf.File = args[i+1]
			skip = 1
		case "--config":
			if i+1 >= len(args) {
				return gf, nil, errors.New("--config requires a value")
			}
			gf.Config = args[i+1]
			skip = 1
		case "--json":
			gf.JSON = true
		case "--plain":
			gf.Plain = true
		case "--ascii":
			gf.ASCII = true
		case "--quiet":
			gf.Quiet = true
		case "--verbose":
			gf.Verbose = true
		default:
			out = append(out, a)
		}
	}

	if gf.JSON && gf.Plain {
		return gf, nil, errors.New("--json and --plain are mutually exclusive")
	}
	return gf, out, nil
}

func (e *env) debugf(format string, args ...any) {
	if !e.gf.Verbose {
		return
	}
	fmt.Fprintf(e.stderr, progName+": "+format+"\n", args...)
}

func (e *env) output() string {
	switch {
	case e.gf.JSON:
		return config.OutputJSON
	case e.gf.Plain:
		return config.OutputPlain
	case e.cfg.Output != "":
		return e.cfg.Output
	default:
		return config.OutputTable
	}
}

func (e *env) ascii() bool {
	return e.gf.ASCII || e.cfg.ASCII
}
