package adapters

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
)

type ffmpegTranscoder struct {
	logger outbound.LoggerPort
}

// NewFFMPEGTranscoder builds the Transcoder backed by the ffmpeg binary on
// PATH. Input and output go through uniquely named temp files because ffmpeg
// needs seekable inputs for some containers.
func NewFFMPEGTranscoder(logger outbound.LoggerPort) outbound.TranscoderPort {
	return &ffmpegTranscoder{
		logger: logger,
	}
}

func (t *ffmpegTranscoder) Convert(audio []byte, targetFormat string) ([]byte, error) {
	id := uuid.NewString()
	inputFile := filepath.Join(os.TempDir(), "tts_"+id+"_input.mp3")
	outputFile := filepath.Join(os.TempDir(), "tts_"+id+"_output."+targetFormat)

	defer func() {
		t.removeQuietly(inputFile)
		t.removeQuietly(outputFile)
	}()

	if err := os.WriteFile(inputFile, audio, 0o600); err != nil {
		return nil, &domain.TranscodeError{TargetFormat: targetFormat, Err: err}
	}

	cmd := exec.Command("ffmpeg", ffmpegArgs(targetFormat, inputFile, outputFile)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.logger.ErrorWithFields(err, "ffmpeg conversion failed", map[string]interface{}{
			"target_format": targetFormat,
			"output":        string(out),
		})

		return nil, &domain.TranscodeError{TargetFormat: targetFormat, Err: err}
	}

	converted, err := os.ReadFile(outputFile)
	if err != nil {
		return nil, &domain.TranscodeError{TargetFormat: targetFormat, Err: err}
	}

	t.logger.DebugWithFields("Successfully converted audio", map[string]interface{}{
		"target_format": targetFormat,
		"size":          len(converted),
	})

	return converted, nil
}

// ffmpegArgs returns the encoder arguments for a target format. Each target
// has one fixed parameter set: amr is narrowband telephony (12.2kbit mono
// 8kHz), opus is low-rate VBR speech (16kbit mono 16kHz).
func ffmpegArgs(targetFormat, inputFile, outputFile string) []string {
	args := []string{"-y", "-i", inputFile}

	switch targetFormat {
	case "amr":
		args = append(args, "-b:a", "12.2k", "-ac", "1", "-ar", "8000")
	case "opus":
		args = append(args, "-b:a", "16k", "-ac", "1", "-ar", "16000", "-vbr", "on")
	}

	args = append(args, "-f", targetFormat, outputFile)

	return args
}

func (t *ffmpegTranscoder) removeQuietly(path string) {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		t.logger.Error(err, "failed to clean up temporary file")
	}
}
