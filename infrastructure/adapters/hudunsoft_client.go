package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

const submitBackoffBase = time.Second

type hudunsoftClient struct {
	logger      outbound.LoggerPort
	cfg         *config.UpstreamConfig
	voices      config.VoiceMap
	localAPIKey string
	httpClient  *http.Client
	sleep       func(time.Duration)
}

// NewHudunsoftClient builds the vendor submission client. localAPIKey is the
// service's own inbound API key, forwarded as X-API-Key when set.
func NewHudunsoftClient(cfg *config.UpstreamConfig, voices config.VoiceMap, localAPIKey string, logger outbound.LoggerPort) outbound.UpstreamClientPort {
	return &hudunsoftClient{
		logger:      logger,
		cfg:         cfg,
		voices:      voices,
		localAPIKey: localAPIKey,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		sleep:       time.Sleep,
	}
}

func (c *hudunsoftClient) Submit(ctx context.Context, req domain.SpeechRequest) (*domain.VendorResult, error) {
	form := c.buildForm(req)
	headers := vendorHeaders(c.cfg)
	if c.localAPIKey != "" {
		headers["X-API-Key"] = c.localAPIKey
	}

	res, err := c.submitWithRetry(ctx, form, headers)
	if err != nil {
		return nil, err
	}

	return c.classify(res)
}

// submitWithRetry performs up to RetryCount+1 attempts, waiting
// 1s × 2^(n−1) after the n-th failure. A 400 or 401 aborts immediately; every
// other failure burns the remaining budget, and the last error surfaces.
func (c *hudunsoftClient) submitWithRetry(ctx context.Context, form url.Values, headers map[string]string) (*vendorResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.RetryCount; attempt++ {
		if attempt > 0 {
			c.logger.WarnWithFields("Request failed, retrying", map[string]interface{}{
				"retry":       attempt,
				"retry_count": c.cfg.RetryCount,
				"error":       lastErr.Error(),
			})
			c.sleep(submitBackoffBase * time.Duration(1<<(attempt-1)))
		}

		res, err := postVendorForm(ctx, c.httpClient, c.cfg.URL, form, headers)
		if err == nil {
			return res, nil
		}

		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) && !upstreamErr.Retriable() {
			return nil, err
		}

		lastErr = err
	}

	return nil, lastErr
}

func (c *hudunsoftClient) classify(res *vendorResponse) (*domain.VendorResult, error) {
	switch {
	case res.Code == vendorCodeSuccess && res.Data.FileLink != "":
		c.logger.InfoWithFields("Received audio file URL directly", map[string]interface{}{
			"url": res.Data.FileLink,
		})

		return &domain.VendorResult{Kind: domain.ResultImmediate, AudioURL: res.Data.FileLink}, nil

	case res.Code == vendorCodePending && res.Data.TaskID != "":
		c.logger.InfoWithFields("Received task ID for polling", map[string]interface{}{
			"task_id": res.Data.TaskID,
		})

		return &domain.VendorResult{Kind: domain.ResultPending, TaskID: res.Data.TaskID}, nil

	default:
		return nil, &domain.UpstreamError{
			VendorCode: string(res.Code),
			Message:    res.Message,
			Body:       res.raw,
		}
	}
}

// buildForm assembles the vendor submission payload. The upstream format is
// always mp3; conversion to the caller's requested container happens locally
// after download.
func (c *hudunsoftClient) buildForm(req domain.SpeechRequest) url.Values {
	vendor := c.cfg.Hudunsoft

	form := url.Values{}
	form.Set("client", vendor.Client)
	form.Set("source", vendor.Source)
	form.Set("soft_version", vendor.SoftVersion)
	form.Set("device_id", vendor.DeviceID)
	form.Set("text", req.Text)
	form.Set("bgid", vendor.BgID)
	form.Set("bg_volume", vendor.BgVolume)
	form.Set("format", "mp3")
	form.Set("voice", c.voices.Resolve(req.Voice))
	if req.Emotion != "" {
		form.Set("emotion", req.Emotion)
	}
	form.Set("volume", vendor.Volume)
	form.Set("speech_rate", strconv.Itoa(domain.SpeechRate(req.Speed)))
	form.Set("pitch_rate", vendor.PitchRate)
	form.Set("title", req.Title())
	form.Set("token", vendor.Token)
	form.Set("bg_url", vendor.BgURL)

	return form
}
