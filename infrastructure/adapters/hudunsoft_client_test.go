package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

func newTestUpstreamConfig(url string, retryCount int) *config.UpstreamConfig {
	return &config.UpstreamConfig{
		URL:           url,
		TaskStatusURL: url,
		APIKey:        "test-credits",
		Timeout:       5 * time.Second,
		RetryCount:    retryCount,
		Hudunsoft: config.HudunsoftConfig{
			XDomain:     "user.api.example.com",
			XProduct:    "335",
			XVersion:    "5.7.0.0",
			Client:      "web",
			Source:      "335",
			SoftVersion: "V4.4.0.0",
			DeviceID:    "device-1",
			Token:       "token-1",
			BgID:        "0",
			BgVolume:    "5",
			Volume:      "5",
			PitchRate:   "5",
		},
	}
}

func newTestClient(cfg *config.UpstreamConfig) (*hudunsoftClient, *[]time.Duration) {
	client := NewHudunsoftClient(cfg, config.VoiceMap{"alloy": "voice1"}, "", nopLogger{}).(*hudunsoftClient)

	var sleeps []time.Duration

	client.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
	}

	return client, &sleeps
}

func speechRequest() domain.SpeechRequest {
	return domain.SpeechRequest{Text: "hello", Voice: "alloy", Speed: 1.0, Format: "mp3"}
}

func TestHudunsoftClient_ImmediateResult(t *testing.T) {
	var lastForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		lastForm = r.PostForm

		assert.Equal(t, "test-credits", r.Header.Get("x-credits"))
		assert.Equal(t, "335", r.Header.Get("x-product"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"message":"ok","data":{"file_link":"https://cdn.example.com/a.mp3"}}`))
	}))
	defer server.Close()

	client, sleeps := newTestClient(newTestUpstreamConfig(server.URL, 2))

	result, err := client.Submit(context.Background(), speechRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ResultImmediate, result.Kind)
	assert.Equal(t, "https://cdn.example.com/a.mp3", result.AudioURL)
	assert.Empty(t, *sleeps)

	assert.Equal(t, []string{"hello"}, lastForm["text"])
	assert.Equal(t, []string{"voice1"}, lastForm["voice"])
	assert.Equal(t, []string{"5"}, lastForm["speech_rate"])
	assert.Equal(t, []string{"mp3"}, lastForm["format"])
	assert.Equal(t, []string{"token-1"}, lastForm["token"])
}

func TestHudunsoftClient_PendingResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"2105","message":"processing","data":{"task_id":"task-42"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(newTestUpstreamConfig(server.URL, 2))

	result, err := client.Submit(context.Background(), speechRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.ResultPending, result.Kind)
	assert.Equal(t, "task-42", result.TaskID)
}

func TestHudunsoftClient_RetriesWithExponentialBackoff(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, sleeps := newTestClient(newTestUpstreamConfig(server.URL, 2))

	_, err := client.Submit(context.Background(), speechRequest())
	require.Error(t, err)

	// retryCount=2 means 3 total attempts with 1s then 2s between them.
	assert.Equal(t, int64(3), calls.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.Status)
}

func TestHudunsoftClient_BadRequestAbortsImmediately(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		var calls atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		}))

		client, sleeps := newTestClient(newTestUpstreamConfig(server.URL, 5))

		_, err := client.Submit(context.Background(), speechRequest())
		require.Error(t, err)

		assert.Equal(t, int64(1), calls.Load(), "status %d", status)
		assert.Empty(t, *sleeps)

		server.Close()
	}
}

func TestHudunsoftClient_VendorBodyErrorIsFatal(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"1001","message":"insufficient credits","data":null}`))
	}))
	defer server.Close()

	client, _ := newTestClient(newTestUpstreamConfig(server.URL, 2))

	_, err := client.Submit(context.Background(), speechRequest())
	require.Error(t, err)

	// Body-level vendor errors are outside the retry loop.
	assert.Equal(t, int64(1), calls.Load())

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "1001", upstreamErr.VendorCode)
	assert.Equal(t, "insufficient credits", upstreamErr.Message)
}

func TestHudunsoftClient_TransportErrorIsRetriedThenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client, sleeps := newTestClient(newTestUpstreamConfig(server.URL, 1))

	_, err := client.Submit(context.Background(), speechRequest())
	require.Error(t, err)

	var unreachableErr *domain.VendorUnreachableError
	assert.ErrorAs(t, err, &unreachableErr)
	assert.Len(t, *sleeps, 1)
}

func TestHudunsoftClient_EmotionOnlySentWhenSet(t *testing.T) {
	var lastForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		lastForm = r.PostForm
		_, _ = w.Write([]byte(`{"code":0,"data":{"file_link":"https://cdn.example.com/a.mp3"}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(newTestUpstreamConfig(server.URL, 0))

	_, err := client.Submit(context.Background(), speechRequest())
	require.NoError(t, err)
	assert.NotContains(t, lastForm, "emotion")

	req := speechRequest()
	req.Emotion = "happy"
	_, err = client.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"happy"}, lastForm["emotion"])
}
