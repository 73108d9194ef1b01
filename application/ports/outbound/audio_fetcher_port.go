package outbound

import "context"

// AudioFetcherPort downloads a finished audio asset from the URL the vendor
// returned. Fetch failures are fatal for the request; there is no retry.
type AudioFetcherPort interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
