package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// scanLine reads one line from sc and gives up when ctx ends. At end of
// input it returns io.EOF. A read abandoned through ctx keeps sc busy, so
// sc must not be used again after a context error.
func scanLine(ctx context.Context, sc *bufio.Scanner) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		if sc.Scan() {
			ch <- result{line: sc.Text()}
			return
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		ch <- result{err: err}
	}()

	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// GetSimpleText prints a prompt to w and reads one line from sc. At end of
// input it returns io.EOF; when ctx ends first it returns ctx.Err().
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(ctx context.Context, sc *bufio.Scanner, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := scanLine(ctx, sc)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetConfirmation asks a yes/no question. Only "y" and "yes" confirm.
func GetConfirmation(ctx context.Context, sc *bufio.Scanner, prompt string, w io.Writer) (bool, error) {
	answer, err := GetSimpleText(ctx, sc, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// SplitPaths splits a line of file paths the way a shell would for the
// forms terminals paste on drag and drop: whitespace separated, with
// single quotes, double quotes and backslash escapes.
func SplitPaths(line string) []string {
	var (
		out     []string
		cur     strings.Builder
		inToken bool
		quote   rune
		escaped bool
	)

	flush := func() {
		if inToken {
			out = append(out, cur.String())
			cur.Reset()
			inToken = false
		}
	}

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\\':
			escaped, inToken = true, true
		case r == '\'' || r == '"':
			quote, inToken = r, true
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	flush()
	return out
}
