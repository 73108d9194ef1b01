package outbound

// TranscoderPort converts an audio buffer into the target container/codec.
type TranscoderPort interface {
	Convert(audio []byte, targetFormat string) ([]byte, error)
}
