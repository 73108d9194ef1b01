package domain

import (
	"errors"
	"fmt"
)

// ErrPollTimeout is returned when a vendor task never completes within the
// poller's attempt budget.
var ErrPollTimeout = errors.New("task polling timed out")

// ValidationError rejects bad inbound parameters before anything is sent
// upstream. Param names the offending field when known; Code mirrors the
// OpenAI error code slot.
type ValidationError struct {
	Message string
	Param   string
	Code    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError is a vendor rejection: either a non-success HTTP status or a
// success status carrying a vendor error code. Status is zero when the vendor
// replied 200 but the body signalled failure.
type UpstreamError struct {
	Status     int
	VendorCode string
	Message    string
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Message)
	}

	return fmt.Sprintf("upstream returned error code %s: %s", e.VendorCode, e.Message)
}

// Retriable reports whether the submission retry loop may try again. The
// vendor treats 400 and 401 as permanent; everything else (5xx, transport
// failures wrapped elsewhere) is worth another attempt.
func (e *UpstreamError) Retriable() bool {
	return e.Status != 400 && e.Status != 401
}

// VendorUnreachableError marks a submission or poll attempt that produced no
// vendor response at all (timeout, connection failure). The HTTP boundary
// maps it to 504 instead of relaying a vendor rejection.
type VendorUnreachableError struct {
	Err error
}

func (e *VendorUnreachableError) Error() string {
	return fmt.Sprintf("no response from TTS service: %v", e.Err)
}

func (e *VendorUnreachableError) Unwrap() error {
	return e.Err
}

// DownloadError wraps a failure to retrieve a finished audio asset. Downloads
// are never retried; the whole request fails.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download audio file from %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// TranscodeError wraps a codec-engine failure. It never reaches the caller:
// the pipeline logs it and falls back to the untranscoded asset.
type TranscodeError struct {
	TargetFormat string
	Err          error
}

func (e *TranscodeError) Error() string {
	return fmt.Sprintf("failed to convert audio to %s: %v", e.TargetFormat, e.Err)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}
