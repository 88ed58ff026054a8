package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

const barWidth = 30

// renderBar draws percent as a fixed-width bar, e.g. "[#####.....]  50%".
func renderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	return fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("#", filled), strings.Repeat(".", width-filled), percent)
}

// progressView prints upload progress. On a terminal the bar is redrawn in
// place; otherwise a line is written each time another tenth completes.
type progressView struct {
	mu     sync.Mutex
	out    io.Writer
	tty    bool
	active bool
	bucket int
}

func newProgressView(out io.Writer, tty bool) *progressView {
	return &progressView{out: out, tty: tty, bucket: -1}
}

func (p *progressView) update(percent float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.active = true
	if p.tty {
		fmt.Fprintf(p.out, "\r%s", renderBar(percent, barWidth))
		return
	}
	if b := int(percent) / 10; b > p.bucket {
		p.bucket = b
		fmt.Fprintln(p.out, renderBar(percent, barWidth))
	}
}

// finish ends the current bar so the next output starts on a fresh line.
func (p *progressView) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active && p.tty {
		fmt.Fprintln(p.out)
	}
	p.active = false
	p.bucket = -1
}
