package controllers

import (
	"fmt"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/inbound"
	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
	"github.com/lizhe2004/xunjie-tts-open-api/infrastructure/gin_interface/dto"
)

type SpeechController interface {
	CreateSpeech(c *gin.Context)
	RegisterRoutes(g *gin.Engine, handlers ...gin.HandlerFunc)
}

type speechController struct {
	logger      outbound.LoggerPort
	synthesizer inbound.SpeechSynthesizerPort
	formats     config.FormatMap
}

func NewSpeechController(
	logger outbound.LoggerPort,
	synthesizer inbound.SpeechSynthesizerPort,
	formats config.FormatMap,
) SpeechController {
	return &speechController{
		logger:      logger,
		synthesizer: synthesizer,
		formats:     formats,
	}
}

// CreateSpeech handles the OpenAI-compatible POST /v1/audio/speech endpoint.
func (s *speechController) CreateSpeech(c *gin.Context) {
	var req dto.SpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeOpenAIError(c, &domain.ValidationError{Message: err.Error()})

		return
	}

	if err := validateSpeechRequest(req); err != nil {
		s.logger.WarnWithFields("Rejected TTS request", map[string]interface{}{
			"reason": err.Message,
		})
		writeOpenAIError(c, err)

		return
	}

	speechReq := domain.SpeechRequest{
		Text:    req.Input,
		Voice:   req.Voice,
		Speed:   req.Speed,
		Emotion: req.Emotion,
		Format:  req.ResponseFormat,
		Demo:    false,
	}
	if speechReq.Speed == 0 {
		speechReq.Speed = 1.0
	}
	if speechReq.Format == "" {
		speechReq.Format = "mp3"
	}

	result, err := s.synthesizer.Synthesize(c.Request.Context(), speechReq)
	if err != nil {
		s.logger.Error(err, "TTS API Error")
		writeOpenAIError(c, err)

		return
	}

	writeAudioResponse(c, result, s.formats)
}

func validateSpeechRequest(req dto.SpeechRequest) *domain.ValidationError {
	if req.Model == "" || req.Input == "" || req.Voice == "" {
		return &domain.ValidationError{
			Message: "Missing required parameters: model, input, or voice",
		}
	}

	if utf8.RuneCountInString(req.Input) > domain.MaxInputLength {
		return &domain.ValidationError{
			Message: "Input text too long. Maximum length is 4096 characters.",
			Param:   "input",
			Code:    "text_too_long",
		}
	}

	return nil
}

func writeOpenAIError(c *gin.Context, err error) {
	mapped := mapPipelineError(err)
	c.JSON(mapped.Status, mapped.ToErrorResponse())
}

func (s *speechController) RegisterRoutes(g *gin.Engine, handlers ...gin.HandlerFunc) {
	route := append(handlers, s.CreateSpeech)
	g.POST("/v1/audio/speech", route...)
}

// writeAudioResponse sends the finished audio with the format's MIME type, a
// download filename, and the cache-hit indicator.
func writeAudioResponse(c *gin.Context, result *inbound.SynthesisResult, formats config.FormatMap) {
	cacheHeader := "MISS"
	if result.Cached {
		cacheHeader = "HIT"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "speech."+result.Format))
	c.Header("X-Processed-By", "OpenAI-Compat-TTS-API")
	c.Header("X-Cache", cacheHeader)
	c.Data(200, formats.ContentType(result.Format), result.Audio)
}
