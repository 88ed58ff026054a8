package uploader

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/imguploader/internal/netx"
)

// progressBuffer bounds the number of undelivered progress values. When
// the consumer lags, the oldest pending value is dropped.
const progressBuffer = 32

// Progress is one bytes-sent observation.
type Progress struct {
	Sent    int64
	Total   int64
	Percent float64
}

// Result is the single terminal outcome of an Operation.
type Result struct {
	RequestID  string
	StatusCode int
	Body       []byte
	ImageURL   string
	Malformed  bool
	Err        error
}

// HasURL reports whether the response carried an image URL.
func (r Result) HasURL() bool { return r.Err == nil && r.ImageURL != "" }

// StatusOK reports whether the endpoint answered with a 2xx status.
func (r Result) StatusOK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// Operation is the handle of one in-flight upload. The transport side
// drives it through Report and Finish; consumers read Progress and Wait.
type Operation struct {
	requestID string
	progress  chan Progress
	done      chan struct{}

	mu       sync.Mutex
	finished bool
	last     float64
	result   Result
}

// NewOperation returns an operation with no progress yet. Uploader creates
// one per Upload call; tests use it to script a transport.
func NewOperation(requestID string) *Operation {
	return &Operation{
		requestID: requestID,
		progress:  make(chan Progress, progressBuffer),
		done:      make(chan struct{}),
	}
}

// RequestID returns the correlation ID sent with the request.
func (o *Operation) RequestID() string { return o.requestID }

// Progress returns the progress channel. It is closed before Done fires.
func (o *Operation) Progress() <-chan Progress { return o.progress }

// Done is closed once the result is available.
func (o *Operation) Done() <-chan struct{} { return o.done }

// Result returns the terminal result. It is the zero Result before Done.
func (o *Operation) Result() Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// Wait blocks until the operation finishes or ctx ends.
func (o *Operation) Wait(ctx context.Context) (Result, error) {
	select {
	case <-o.done:
		return o.Result(), nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Report records that sent of total bytes have been handed to the network.
// Reports after Finish, and reports that would move the percentage
// backwards, are ignored.
func (o *Operation) Report(sent, total int64) {
	p := Progress{Sent: sent, Total: total, Percent: netx.Percent(sent, total)}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.finished || p.Percent < o.last {
		return
	}
	o.last = p.Percent

	select {
	case o.progress <- p:
		return
	default:
	}
	select {
	case <-o.progress:
	default:
	}
	select {
	case o.progress <- p:
	default:
	}
}

// Finish publishes res. Only the first call has an effect.
func (o *Operation) Finish(res Result) {
	o.mu.Lock()
	if o.finished {
		o.mu.Unlock()
		return
	}
	o.finished = true
	if res.RequestID == "" {
		res.RequestID = o.requestID
	}
	o.result = res
	close(o.progress)
	o.mu.Unlock()

	close(o.done)
}
