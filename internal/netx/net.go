// Package netx contains transport helpers shared by the HTTP uploader.
package netx

import (
	"io"
	"sync"
)

// Percent returns sent/total*100 clamped to [0, 100]. A non-positive total
// reports 100: there is nothing left to send.
func Percent(sent, total int64) float64 {
	if total <= 0 {
		return 100
	}
	p := float64(sent) / float64(total) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// ProgressReader wraps a request body and reports the running byte count
// after every Read. The callback never sees a decreasing value or a value
// above Total.
type ProgressReader struct {
	r        io.Reader
	total    int64
	onChange func(sent, total int64)

	mu   sync.Mutex
	sent int64
}

func NewProgressReader(r io.Reader, total int64, onChange func(sent, total int64)) *ProgressReader {
	return &ProgressReader{r: r, total: total, onChange: onChange}
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.mu.Lock()
		p.sent += int64(n)
		if p.total > 0 && p.sent > p.total {
			p.sent = p.total
		}
		sent := p.sent
		p.mu.Unlock()

		if p.onChange != nil {
			p.onChange(sent, p.total)
		}
	}
	return n, err
}

// Sent returns the number of bytes read so far.
func (p *ProgressReader) Sent() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent
}

// Total returns the expected body length.
func (p *ProgressReader) Total() int64 { return p.total }
