package outbound

import (
	"context"

	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

// UpstreamClientPort submits a synthesis request to the vendor API. A
// successful submission yields either a finished audio URL or a task to poll;
// transport failures and retriable vendor statuses are retried internally
// before an error surfaces.
type UpstreamClientPort interface {
	Submit(ctx context.Context, req domain.SpeechRequest) (*domain.VendorResult, error)
}
