package uploader

import "errors"

var (
	// ErrNoCandidates is returned by Upload when called with nothing to send.
	ErrNoCandidates = errors.New("no candidates to upload")

	// ErrInvalidEndpoint is returned by New for a non-absolute or
	// non-http(s) endpoint URL.
	ErrInvalidEndpoint = errors.New("invalid upload endpoint")

	// ErrTransport marks a network-level failure: the request could not be
	// sent or the response could not be read.
	ErrTransport = errors.New("transport error")

	// ErrCanceled marks an operation abandoned through its context.
	ErrCanceled = errors.New("upload canceled")
)
