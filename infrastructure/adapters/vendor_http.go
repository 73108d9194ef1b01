package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

const vendorUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36"

const (
	vendorCodeSuccess vendorCode = "0"
	vendorCodePending vendorCode = "2105"
)

// vendorCode normalizes the vendor's code field, which arrives as the number
// 0 on success but as a string ("2105" and friends) otherwise.
type vendorCode string

func (c *vendorCode) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	s = strings.Trim(s, `"`)
	*c = vendorCode(s)

	return nil
}

type vendorData struct {
	FileLink   string `json:"file_link"`
	TaskID     string `json:"task_id"`
	IsComplete int    `json:"is_complete"`
}

type vendorResponse struct {
	Code    vendorCode `json:"code"`
	Message string     `json:"message"`
	Data    vendorData `json:"data"`

	raw string
}

// vendorHeaders is the fixed header set the hudunsoft API expects on both the
// submission and the task-status endpoints.
func vendorHeaders(cfg *config.UpstreamConfig) map[string]string {
	return map[string]string{
		"Content-Type": "application/x-www-form-urlencoded; charset=UTF-8",
		"user-agent":   vendorUserAgent,
		"x-credits":    cfg.APIKey,
		"x-domain":     cfg.Hudunsoft.XDomain,
		"x-product":    cfg.Hudunsoft.XProduct,
		"x-version":    cfg.Hudunsoft.XVersion,
		"accept":       "application/json, text/javascript, */*; q=0.01",
	}
}

// postVendorForm performs one form-encoded POST against a vendor endpoint and
// decodes the JSON envelope. Transport failures become
// VendorUnreachableError; non-2xx statuses become UpstreamError carrying the
// vendor's body.
func postVendorForm(ctx context.Context, client *http.Client, endpoint string, form url.Values, headers map[string]string) (*vendorResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, &domain.VendorUnreachableError{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &domain.VendorUnreachableError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		parsed := vendorResponse{}
		_ = json.Unmarshal(body, &parsed)

		return nil, &domain.UpstreamError{
			Status:     res.StatusCode,
			VendorCode: string(parsed.Code),
			Message:    parsed.Message,
			Body:       string(body),
		}
	}

	parsed := vendorResponse{raw: string(body)}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &domain.UpstreamError{
			Status:  res.StatusCode,
			Message: "invalid vendor response: " + err.Error(),
			Body:    string(body),
		}
	}

	return &parsed, nil
}
