package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/common"
	"github.com/dmitrijs2005/imguploader/internal/logging"
	"github.com/dmitrijs2005/imguploader/internal/netx"
	"github.com/google/uuid"
)

// Uploader posts candidate batches to a single HTTP(S) endpoint.
// It is safe for concurrent use.
type Uploader struct {
	client    *http.Client
	endpoint  string
	fieldName string
	urlField  string
	timeout   time.Duration
	logger    logging.Logger
}

// Option customises an Uploader.
type Option func(*Uploader)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(u *Uploader) {
		if c != nil {
			u.client = c
		}
	}
}

// WithFieldName sets the multipart field name every part is sent under.
func WithFieldName(name string) Option {
	return func(u *Uploader) {
		if name != "" {
			u.fieldName = name
		}
	}
}

// WithURLField sets the JSON response field holding the image URL.
func WithURLField(name string) Option {
	return func(u *Uploader) {
		if name != "" {
			u.urlField = name
		}
	}
}

// WithTimeout bounds each request. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(u *Uploader) { u.timeout = d }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(u *Uploader) {
		if l != nil {
			u.logger = l
		}
	}
}

// New validates endpoint and returns an Uploader.
func New(endpoint string, opts ...Option) (*Uploader, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	u := &Uploader{
		client:    &http.Client{},
		endpoint:  endpoint,
		fieldName: common.DefaultFormFieldName,
		urlField:  common.DefaultURLFieldName,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Upload starts one POST carrying every candidate and returns immediately.
// Cancelling ctx abandons the request; the operation then finishes with
// ErrCanceled.
func (u *Uploader) Upload(ctx context.Context, candidates []models.Candidate) (*Operation, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	body, contentType, err := encodeBody(u.fieldName, candidates)
	if err != nil {
		return nil, err
	}

	op := NewOperation(uuid.NewString())
	go u.send(ctx, op, body, contentType, len(candidates))

	return op, nil
}

func (u *Uploader) send(ctx context.Context, op *Operation, body *bytes.Buffer, contentType string, files int) {
	log := u.logger.With("request_id", op.RequestID())

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	payload := body.Bytes()
	total := int64(len(payload))
	newBody := func() io.Reader {
		return netx.NewProgressReader(bytes.NewReader(payload), total, op.Report)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, newBody())
	if err != nil {
		op.Finish(Result{Err: fmt.Errorf("%w: build request: %w", ErrTransport, err)})
		return
	}
	req.ContentLength = total
	// lets the client replay the body on 307/308 redirects
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(newBody()), nil
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, op.RequestID())

	log.Debug(ctx, "upload started", "endpoint", u.endpoint, "files", files, "bytes", total)
	op.Report(0, total)

	resp, err := u.client.Do(req)
	if err != nil {
		op.Finish(Result{Err: classify(err)})
		log.Warn(ctx, "upload request failed", "error", err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		op.Finish(Result{StatusCode: resp.StatusCode, Err: classify(err)})
		log.Warn(ctx, "reading upload response failed", "error", err)
		return
	}

	imageURL, ok := parseImageURL(data, u.urlField)
	op.Finish(Result{
		StatusCode: resp.StatusCode,
		Body:       data,
		ImageURL:   imageURL,
		Malformed:  !ok,
	})

	log.Info(ctx, "upload finished", "status", resp.StatusCode, "has_url", imageURL != "", "malformed", !ok)
}

// classify maps a client error onto ErrCanceled or ErrTransport. Deadline
// expiry counts as a transport failure.
func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// parseImageURL extracts field from a JSON object body. ok is false when
// the body is not a JSON object. A missing or non-string field yields an
// empty URL with ok true.
func parseImageURL(body []byte, field string) (imageURL string, ok bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return "", false
	}

	raw, found := payload[field]
	if !found {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", true
	}
	return s, true
}
