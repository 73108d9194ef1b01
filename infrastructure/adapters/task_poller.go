package adapters

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

type taskPoller struct {
	logger     outbound.LoggerPort
	cfg        *config.UpstreamConfig
	pollCfg    *config.PollConfig
	httpClient *http.Client
	sleep      func(time.Duration)
}

// NewTaskPoller builds the vendor task-status poller. Unlike the submission
// client it never retries a failed call: any transport error or unexpected
// vendor code aborts the poll.
func NewTaskPoller(cfg *config.UpstreamConfig, pollCfg *config.PollConfig, logger outbound.LoggerPort) outbound.TaskPollerPort {
	return &taskPoller{
		logger:     logger,
		cfg:        cfg,
		pollCfg:    pollCfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		sleep:      time.Sleep,
	}
}

func (p *taskPoller) Poll(ctx context.Context, taskID string) (string, error) {
	vendor := p.cfg.Hudunsoft

	form := url.Values{}
	form.Set("client", vendor.Client)
	form.Set("source", vendor.Source)
	form.Set("soft_version", vendor.SoftVersion)
	form.Set("device_id", vendor.DeviceID)
	form.Set("taskId", taskID)

	headers := vendorHeaders(p.cfg)

	for attempt := 1; attempt <= p.pollCfg.MaxAttempts; attempt++ {
		p.logger.InfoWithFields("Polling task status", map[string]interface{}{
			"task_id":      taskID,
			"attempt":      attempt,
			"max_attempts": p.pollCfg.MaxAttempts,
		})

		res, err := postVendorForm(ctx, p.httpClient, p.cfg.TaskStatusURL, form, headers)
		if err != nil {
			return "", err
		}

		if res.Code == vendorCodeSuccess && res.Data.IsComplete == 1 {
			p.logger.Info("Task completed successfully, retrieving audio URL")

			return res.Data.FileLink, nil
		}

		if res.Code != vendorCodePending {
			return "", &domain.UpstreamError{
				VendorCode: string(res.Code),
				Message:    res.Message,
				Body:       res.raw,
			}
		}

		p.sleep(p.pollCfg.Interval)
	}

	return "", domain.ErrPollTimeout
}
