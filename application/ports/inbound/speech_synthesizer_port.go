package inbound

import (
	"context"

	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

// SynthesisResult is what a completed pipeline run hands back to the HTTP
// layer: the audio bytes, the format they should be served as, and whether
// they came from the cache.
type SynthesisResult struct {
	Audio  []byte
	Format string
	Cached bool
}

// SpeechSynthesizerPort is the single entry point the HTTP layer sees.
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, req domain.SpeechRequest) (*SynthesisResult, error)
}
