package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// command is a single REPL verb. args are the whitespace-separated tokens
// after the verb.
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

// execIface is what the REPL needs from the application. The real App
// satisfies it; tests provide a stub.
type execIface interface {
	commands() []command
}

// runREPL reads commands line by line from reader and dispatches them until
// EOF, "exit" or "quit". Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	cmds := make(map[string]command)
	for _, c := range a.commands() {
		cmds[c.name] = c
	}

	for {
		printlnFn(fmt.Sprintf("jk (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			printlnFn(helpText(cmds))
			continue
		}

		c, ok := cmds[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if err := c.run(ctx, args); err != nil {
			printlnFn("error:", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func helpText(cmds map[string]command) string {
	names := make([]string, 0, len(cmds))
	for n := range cmds {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, n := range names {
		fmt.Fprintf(&b, "  %s\n", cmds[n].usage)
	}
	b.WriteString("  help\n  exit")
	return b.String()
}

// errUsage reports a malformed command line.
type errUsage string

func (e errUsage) Error() string { return "usage: " + string(e) }

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return errUsage(usage)
	}
	return nil
}
