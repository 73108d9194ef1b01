package dto

// SpeechRequest is the OpenAI-compatible request body for
// POST /v1/audio/speech. model, input, and voice are checked by the
// controller so the error message can name them the way clients expect.
type SpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed"`
	Emotion        string  `json:"emotion"`
}
