// Package common contains constants shared by the uploader components.
package common

// RequestIDHeaderName is the HTTP header carrying the per-request
// correlation ID on outbound upload requests.
const RequestIDHeaderName = "X-Request-ID"

// DefaultFormFieldName is the multipart field every image part is sent under.
const DefaultFormFieldName = "file"

// DefaultURLFieldName is the JSON field of the upload response holding the
// public image URL.
const DefaultURLFieldName = "imageUrl"
