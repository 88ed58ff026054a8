package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
	drops [][]string
	hist  [][]string
}

func (f *fakeExec) Pick(context.Context) error { f.calls = append(f.calls, "pick"); return nil }
func (f *fakeExec) Drop(_ context.Context, paths []string) error {
	f.calls = append(f.calls, "drop")
	f.drops = append(f.drops, paths)
	return nil
}
func (f *fakeExec) Status(context.Context) error  { f.calls = append(f.calls, "status"); return nil }
func (f *fakeExec) Copy(context.Context) error    { f.calls = append(f.calls, "copy"); return nil }
func (f *fakeExec) Dismiss(context.Context) error { f.calls = append(f.calls, "dismiss"); return nil }
func (f *fakeExec) History(_ context.Context, args []string) error {
	f.calls = append(f.calls, "history")
	f.hist = append(f.hist, args)
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func stubStat(t *testing.T, existing ...string) {
	t.Helper()
	orig := statFn
	statFn = func(p string) bool {
		for _, e := range existing {
			if e == p {
				return true
			}
		}
		return false
	}
	t.Cleanup(func() { statFn = orig })
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)
	stubStat(t, "/tmp/cat pic.png")

	input := strings.NewReader(strings.Join([]string{
		"help",
		"pick",
		"drop a.png 'my dog.jpg'",
		"status",
		"copy",
		"",
		"dismiss",
		"history 5",
		"'/tmp/cat pic.png'",
		"exit",
		"status",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"pick", "drop", "status", "copy", "dismiss", "history", "drop"}, exec.calls)
	assert.Equal(t, [][]string{{"a.png", "my dog.jpg"}, {"/tmp/cat pic.png"}}, exec.drops)
	assert.Equal(t, [][]string{{"5"}}, exec.hist)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	lines := capturePrintln(t)
	stubStat(t)

	input := strings.NewReader("drop\nfoobar\nquit\n")
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return " (done)" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: drop <paths...>")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "imgup (done)>")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("status")))
	assert.Equal(t, []string{"status"}, exec.calls)
}

func TestRunREPL_StopsWhenContextCanceled(t *testing.T) {
	capturePrintln(t)

	// input stays open: nothing is ever written and the writer is only
	// closed after the test
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, &fakeExec{}, func() string { return "" }, bufio.NewScanner(pr))
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.Fail(t, "REPL kept waiting for input after cancel")
	}
}

func TestRunREPL_CanceledContextRunsNothing(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("status\ncopy\n")))
	assert.Empty(t, exec.calls)
}
