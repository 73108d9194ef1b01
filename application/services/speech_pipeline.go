package services

import (
	"context"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/inbound"
	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

// pipelineState enumerates the steps of one synthesis run. Every state's
// failure moves to stateFailed except transcoding, which degrades to the
// untranscoded asset instead.
type pipelineState int

const (
	stateCacheCheck pipelineState = iota
	stateSubmit
	statePoll
	stateFetch
	stateTranscode
	stateCacheStore
	stateDone
	stateFailed
)

type pipelineRun struct {
	state    pipelineState
	req      domain.SpeechRequest
	cacheKey string

	submission *domain.VendorResult
	audioURL   string
	asset      domain.AudioAsset

	result *inbound.SynthesisResult
	err    error
}

func (r *pipelineRun) fail(err error) {
	r.err = err
	r.state = stateFailed
}

type speechPipeline struct {
	logger       outbound.LoggerPort
	upstream     outbound.UpstreamClientPort
	poller       outbound.TaskPollerPort
	fetcher      outbound.AudioFetcherPort
	transcoder   outbound.TranscoderPort
	cache        outbound.AudioCachePort
	cacheEnabled bool
}

// NewSpeechPipeline composes the request-fulfillment flow:
// cache check → submit → (poll) → fetch → (transcode) → cache store.
// With caching disabled both cache states become pass-throughs, leaving the
// externally visible behavior identical.
func NewSpeechPipeline(
	logger outbound.LoggerPort,
	upstream outbound.UpstreamClientPort,
	poller outbound.TaskPollerPort,
	fetcher outbound.AudioFetcherPort,
	transcoder outbound.TranscoderPort,
	cache outbound.AudioCachePort,
	cacheEnabled bool,
) inbound.SpeechSynthesizerPort {
	return &speechPipeline{
		logger:       logger,
		upstream:     upstream,
		poller:       poller,
		fetcher:      fetcher,
		transcoder:   transcoder,
		cache:        cache,
		cacheEnabled: cacheEnabled,
	}
}

func (s *speechPipeline) Synthesize(ctx context.Context, req domain.SpeechRequest) (*inbound.SynthesisResult, error) {
	run := &pipelineRun{
		state:    stateCacheCheck,
		req:      req,
		cacheKey: req.CacheKey(),
	}

	for {
		switch run.state {
		case stateCacheCheck:
			s.handleCacheCheck(run)
		case stateSubmit:
			s.handleSubmit(ctx, run)
		case statePoll:
			s.handlePoll(ctx, run)
		case stateFetch:
			s.handleFetch(ctx, run)
		case stateTranscode:
			s.handleTranscode(run)
		case stateCacheStore:
			s.handleCacheStore(run)
		case stateDone:
			return run.result, nil
		case stateFailed:
			return nil, run.err
		}
	}
}

func (s *speechPipeline) handleCacheCheck(run *pipelineRun) {
	if !s.cacheEnabled {
		run.state = stateSubmit

		return
	}

	if audio, ok := s.cache.Get(run.cacheKey); ok {
		s.logger.InfoWithFields("Cache hit for TTS request", map[string]interface{}{
			"voice": run.req.Voice,
			"demo":  run.req.Demo,
		})

		run.result = &inbound.SynthesisResult{Audio: audio, Format: run.req.Format, Cached: true}
		run.state = stateDone

		return
	}

	run.state = stateSubmit
}

func (s *speechPipeline) handleSubmit(ctx context.Context, run *pipelineRun) {
	submission, err := s.upstream.Submit(ctx, run.req)
	if err != nil {
		run.fail(err)

		return
	}

	run.submission = submission

	switch submission.Kind {
	case domain.ResultImmediate:
		run.audioURL = submission.AudioURL
		run.state = stateFetch
	case domain.ResultPending:
		run.state = statePoll
	}
}

func (s *speechPipeline) handlePoll(ctx context.Context, run *pipelineRun) {
	audioURL, err := s.poller.Poll(ctx, run.submission.TaskID)
	if err != nil {
		run.fail(err)

		return
	}

	run.audioURL = audioURL
	run.state = stateFetch
}

func (s *speechPipeline) handleFetch(ctx context.Context, run *pipelineRun) {
	data, err := s.fetcher.Fetch(ctx, run.audioURL)
	if err != nil {
		run.fail(err)

		return
	}

	run.asset = domain.AudioAsset{Data: data, SourceURL: run.audioURL}
	run.state = stateTranscode
}

// handleTranscode is the only step whose failure is non-fatal: the caller
// gets the vendor's native audio rather than an error.
func (s *speechPipeline) handleTranscode(run *pipelineRun) {
	run.state = stateCacheStore

	if !run.asset.NeedsTranscode(run.req.Format) {
		return
	}

	converted, err := s.transcoder.Convert(run.asset.Data, run.req.Format)
	if err != nil {
		s.logger.ErrorWithFields(err, "Audio conversion failed, returning original audio", map[string]interface{}{
			"target_format": run.req.Format,
		})

		return
	}

	run.asset.Data = converted
}

func (s *speechPipeline) handleCacheStore(run *pipelineRun) {
	if s.cacheEnabled {
		s.cache.Put(run.cacheKey, run.asset.Data)
	}

	run.result = &inbound.SynthesisResult{Audio: run.asset.Data, Format: run.req.Format, Cached: false}
	run.state = stateDone
}
