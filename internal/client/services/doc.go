// Package services contains the uploader's application services.
//
// UploadService turns a file selection into an upload: it validates the
// candidates, applies the partial-acceptance policy, starts a new session
// generation on the tracker and feeds the transport's progress and result
// back into it. HistoryService records completed uploads.
package services
