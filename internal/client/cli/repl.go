package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// statFn reports whether a REPL line names an existing file. Tests stub it.
var statFn = func(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Pick(ctx context.Context) error
	Drop(ctx context.Context, paths []string) error
	Status(ctx context.Context) error
	Copy(ctx context.Context) error
	Dismiss(ctx context.Context) error
	History(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the uploader.
//
// It reads a line from the scanner, parses the first token as the command
// and dispatches to a. The loop exits on scanner EOF, when ctx ends (an
// interrupt, even while waiting for input) or when the user types "exit"
// or "quit".
//
// Commands
//
//	help               show available commands
//	pick               choose image files by path
//	drop <paths...>    upload dropped files
//	status             show the current upload
//	copy               copy the result link to the clipboard
//	dismiss            clear the current notice
//	history [count]    list recent uploads
//	exit | quit        leave the program
//
// A line that is not a command but names an existing file is what a
// terminal produces when a file is dropped onto it, and is handled like
// drop. Errors returned by handlers are ignored here; handlers report to
// the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("imgup%s> ", statusFn()))
		line, err := scanLine(ctx, scanner)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: pick, drop <paths...>, status, copy, dismiss, history [count], exit")
			printlnFn("Dropping image files onto the terminal uploads them too.")

		case "pick":
			_ = a.Pick(ctx)

		case "drop":
			rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "drop"))
			paths := SplitPaths(rest)
			if len(paths) == 0 {
				printlnFn("Usage: drop <paths...>")
				continue
			}
			_ = a.Drop(ctx, paths)

		case "status":
			_ = a.Status(ctx)

		case "copy":
			_ = a.Copy(ctx)

		case "dismiss":
			_ = a.Dismiss(ctx)

		case "history":
			_ = a.History(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if paths := SplitPaths(line); len(paths) > 0 && statFn(paths[0]) {
				_ = a.Drop(ctx, paths)
				continue
			}
			printlnFn("Unknown command:", cmd)
		}
	}
}
