package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

// downloadTimeout is deliberately longer than the submission timeout: the
// finished asset can be large.
const downloadTimeout = 60 * time.Second

type audioFetcher struct {
	logger     outbound.LoggerPort
	httpClient *http.Client
}

func NewAudioFetcher(logger outbound.LoggerPort) outbound.AudioFetcherPort {
	return &audioFetcher{
		logger:     logger,
		httpClient: &http.Client{Timeout: downloadTimeout},
	}
}

func (f *audioFetcher) Fetch(ctx context.Context, audioURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, &domain.DownloadError{URL: audioURL, Err: err}
	}

	req.Header.Set("accept", "*/*")
	req.Header.Set("accept-encoding", "identity;q=1, *;q=0")
	req.Header.Set("accept-language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("connection", "keep-alive")
	req.Header.Set("user-agent", vendorUserAgent)

	f.logger.DebugWithFields("Downloading audio file", map[string]interface{}{
		"url": audioURL,
	})

	res, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &domain.DownloadError{URL: audioURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &domain.DownloadError{
			URL: audioURL,
			Err: fmt.Errorf("unexpected status code %d", res.StatusCode),
		}
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &domain.DownloadError{URL: audioURL, Err: err}
	}

	f.logger.DebugWithFields("Successfully downloaded audio file", map[string]interface{}{
		"url":  audioURL,
		"size": len(payload),
	})

	return payload, nil
}
