package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
)

// MaxInputLength is the maximum accepted input text length in code points.
const MaxInputLength = 4096

// SpeechRequest carries everything one synthesis run needs. It is built once
// per inbound call and never mutated afterwards.
type SpeechRequest struct {
	Text    string
	Voice   string
	Speed   float64
	Emotion string
	Format  string
	Demo    bool
}

// CacheKey derives the cache lookup key for the request. Demo traffic lives
// in its own namespace so the demo page never serves or pollutes production
// entries. The full text is hashed, so long inputs sharing a prefix do not
// collide.
func (r SpeechRequest) CacheKey() string {
	prefix := ""
	if r.Demo {
		prefix = "demo_"
	}

	emotion := r.Emotion
	if emotion == "" {
		emotion = "none"
	}

	textHash := sha256.Sum256([]byte(r.Text))

	return fmt.Sprintf("%s%s_%g_%s_%s_%s",
		prefix, r.Voice, r.Speed, emotion, r.Format, hex.EncodeToString(textHash[:]))
}

// Title returns the vendor-facing title field: the text truncated to 50
// characters with an ellipsis marker when cut.
func (r SpeechRequest) Title() string {
	runes := []rune(r.Text)
	if len(runes) <= 50 {
		return r.Text
	}

	return string(runes[:50]) + "..."
}

// VendorResultKind discriminates the two shapes a successful submission can
// take.
type VendorResultKind int

const (
	// ResultImmediate means the vendor returned a finished audio URL.
	ResultImmediate VendorResultKind = iota
	// ResultPending means the vendor queued a task that must be polled.
	ResultPending
)

// VendorResult is the outcome of a successful upstream submission.
type VendorResult struct {
	Kind     VendorResultKind
	AudioURL string
	TaskID   string
}

// AudioAsset is a fetched audio buffer plus the URL it came from, which is
// the only hint we have about its container format.
type AudioAsset struct {
	Data      []byte
	SourceURL string
}

// SourceFormat infers the asset's container from the source URL's file
// extension, ignoring any query string. Empty when the URL carries no
// extension.
func (a AudioAsset) SourceFormat() string {
	url := a.SourceURL
	if idx := strings.Index(url, "?"); idx >= 0 {
		url = url[:idx]
	}

	ext := strings.ToLower(path.Ext(url))

	return strings.TrimPrefix(ext, ".")
}

// transcodeTargets lists the formats the vendor never produces natively, so
// requesting them may require conversion.
var transcodeTargets = map[string]bool{
	"amr":  true,
	"opus": true,
}

// NeedsTranscode reports whether the asset must be converted to reach the
// target format: only amr and opus ever trigger conversion, and only when the
// source extension does not already match.
func (a AudioAsset) NeedsTranscode(targetFormat string) bool {
	if !transcodeTargets[targetFormat] {
		return false
	}

	return a.SourceFormat() != targetFormat
}
