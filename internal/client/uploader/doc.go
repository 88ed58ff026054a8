// Package uploader sends accepted image candidates to the hosting endpoint.
//
// # Overview
//
// One call to (*Uploader).Upload packages every candidate into a single
// multipart/form-data body (all parts under the same field name) and
// issues one POST in the background. The call returns an *Operation at
// once. The operation exposes:
//
//   - Progress(): a channel of Progress values computed from the bytes the
//     HTTP transport has pulled from the body. Values never decrease and
//     stay within [0, 100]. The channel is closed before the result is
//     published.
//   - Done() / Wait(ctx) / Result(): exactly one Result per operation.
//
// The Result reconciles what a browser reports as two separate terminal
// callbacks ("request finished" and "response body available") into one
// value: either a transport failure (Err wraps ErrTransport), a
// cancellation (Err wraps ErrCanceled), or a completed request carrying
// the status code, the raw body and the image URL parsed from it.
//
// # Response handling
//
// Completion does not depend on the HTTP status code; the status is
// reported and it is up to the caller to treat non-2xx specially. The body
// is parsed as a JSON object and the configured URL field (default
// "imageUrl") is copied byte-for-byte into Result.ImageURL. A body that is
// not a JSON object sets Result.Malformed and yields no URL; it is not an
// error.
//
// # Usage
//
//	u, err := uploader.New("https://img.example/upload")
//	op, err := u.Upload(ctx, accepted)
//	for p := range op.Progress() {
//	    fmt.Printf("%.0f%%\n", p.Percent)
//	}
//	res, _ := op.Wait(ctx)
//
// No retries are attempted. No timeout is applied unless WithTimeout is
// given.
package uploader
