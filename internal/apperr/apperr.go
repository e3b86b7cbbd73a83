// Package apperr defines the error kinds shared by the pipeline stages.
//
// Stages wrap one of these sentinels with fmt.Errorf("%w: ...") so the entry
// point can classify any failure with errors.Is and pick an exit code.
package apperr

import "errors"

// Error kinds.
var (
	// ErrFetch is returned when a URL cannot be downloaded or returns no body.
	ErrFetch = errors.New("fetch failed")
	// ErrExtract is returned when a downloaded page has no extractable article text.
	ErrExtract = errors.New("no extractable article content")
	// ErrIO is returned when a local file cannot be read or an output file cannot be written.
	ErrIO = errors.New("file i/o failed")
	// ErrPublish is returned when the CMS rejects a request or cannot be reached.
	ErrPublish = errors.New("publish failed")
	// ErrConfig is returned when required settings are absent or malformed.
	ErrConfig = errors.New("invalid configuration")
)
