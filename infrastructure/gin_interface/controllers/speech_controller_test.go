package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/inbound"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string)                                           {}
func (nopLogger) InfoWithFields(string, map[string]interface{})         {}
func (nopLogger) Error(error, string)                                   {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (nopLogger) Debug(string)                                          {}
func (nopLogger) DebugWithFields(string, map[string]interface{})        {}
func (nopLogger) Warn(string)                                           {}
func (nopLogger) WarnWithFields(string, map[string]interface{})         {}

type fakeSynthesizer struct {
	result  *inbound.SynthesisResult
	err     error
	calls   int
	lastReq domain.SpeechRequest
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, req domain.SpeechRequest) (*inbound.SynthesisResult, error) {
	f.calls++
	f.lastReq = req

	return f.result, f.err
}

func newSpeechRouter(synth *fakeSynthesizer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	controller := NewSpeechController(nopLogger{}, synth, config.GetFormatMapping())
	controller.RegisterRoutes(router)

	return router
}

func postSpeech(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/audio/speech", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestCreateSpeech_Success(t *testing.T) {
	synth := &fakeSynthesizer{
		result: &inbound.SynthesisResult{Audio: []byte("audio-bytes"), Format: "mp3", Cached: false},
	}

	res := postSpeech(newSpeechRouter(synth), `{"model":"tts-1","input":"hello","voice":"alloy"}`)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "audio-bytes", res.Body.String())
	assert.Equal(t, "audio/mpeg", res.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="speech.mp3"`, res.Header().Get("Content-Disposition"))
	assert.Equal(t, "MISS", res.Header().Get("X-Cache"))
	assert.Equal(t, "OpenAI-Compat-TTS-API", res.Header().Get("X-Processed-By"))

	assert.Equal(t, "hello", synth.lastReq.Text)
	assert.Equal(t, "alloy", synth.lastReq.Voice)
	assert.Equal(t, 1.0, synth.lastReq.Speed)
	assert.Equal(t, "mp3", synth.lastReq.Format)
	assert.False(t, synth.lastReq.Demo)
}

func TestCreateSpeech_CacheHitHeader(t *testing.T) {
	synth := &fakeSynthesizer{
		result: &inbound.SynthesisResult{Audio: []byte("a"), Format: "opus", Cached: true},
	}

	res := postSpeech(newSpeechRouter(synth), `{"model":"tts-1","input":"hello","voice":"alloy","response_format":"opus"}`)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "HIT", res.Header().Get("X-Cache"))
	assert.Equal(t, "audio/opus", res.Header().Get("Content-Type"))
}

func TestCreateSpeech_MissingParameters(t *testing.T) {
	synth := &fakeSynthesizer{}

	for _, body := range []string{
		`{"input":"hello","voice":"alloy"}`,
		`{"model":"tts-1","voice":"alloy"}`,
		`{"model":"tts-1","input":"hello"}`,
	} {
		res := postSpeech(newSpeechRouter(synth), body)

		require.Equal(t, http.StatusBadRequest, res.Code, body)

		var payload map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
		assert.Equal(t, "invalid_request_error", payload["error"]["type"])
	}

	assert.Equal(t, 0, synth.calls, "validation failures must not reach the pipeline")
}

func TestCreateSpeech_OversizedInputRejectedBeforeUpstream(t *testing.T) {
	synth := &fakeSynthesizer{}

	body, err := json.Marshal(map[string]interface{}{
		"model": "tts-1",
		"input": strings.Repeat("x", domain.MaxInputLength+1),
		"voice": "alloy",
	})
	require.NoError(t, err)

	res := postSpeech(newSpeechRouter(synth), string(body))

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, 0, synth.calls)

	var payload map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "text_too_long", payload["error"]["code"])
	assert.Equal(t, "input", payload["error"]["param"])
}

func TestCreateSpeech_UpstreamErrorMapping(t *testing.T) {
	synth := &fakeSynthesizer{
		err: &domain.UpstreamError{Status: 502, Message: "bad gateway", Body: `{"code":"500"}`},
	}

	res := postSpeech(newSpeechRouter(synth), `{"model":"tts-1","input":"hello","voice":"alloy"}`)

	require.Equal(t, 502, res.Code)

	var payload map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "api_error", payload["error"]["type"])
	assert.Equal(t, "bad gateway", payload["error"]["message"])
	assert.NotNil(t, payload["error"]["details"])
}

func TestCreateSpeech_VendorUnreachableMapsTo504(t *testing.T) {
	synth := &fakeSynthesizer{
		err: &domain.VendorUnreachableError{Err: context.DeadlineExceeded},
	}

	res := postSpeech(newSpeechRouter(synth), `{"model":"tts-1","input":"hello","voice":"alloy"}`)

	require.Equal(t, http.StatusGatewayTimeout, res.Code)

	var payload map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "timeout_error", payload["error"]["type"])
	assert.Equal(t, "service_unavailable", payload["error"]["code"])
}

func TestCreateSpeech_PollTimeoutMapsToServerError(t *testing.T) {
	synth := &fakeSynthesizer{err: domain.ErrPollTimeout}

	res := postSpeech(newSpeechRouter(synth), `{"model":"tts-1","input":"hello","voice":"alloy"}`)

	require.Equal(t, http.StatusInternalServerError, res.Code)

	var payload map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "server_error", payload["error"]["type"])
}
