package controllers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/inbound"
	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/domain"
	"github.com/lizhe2004/xunjie-tts-open-api/infrastructure/gin_interface/dto"
)

const serviceVersion = "1.0.0"

// DemoController serves the voice demo page and its supporting endpoints,
// plus the health check. Demo synthesis shares the production pipeline but
// lives in its own cache namespace.
type DemoController interface {
	GenerateTTS(c *gin.Context)
	VoiceData(c *gin.Context)
	DemoPage(c *gin.Context)
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type demoController struct {
	logger      outbound.LoggerPort
	synthesizer inbound.SpeechSynthesizerPort
	formats     config.FormatMap
	cfg         *config.DemoConfig
}

func NewDemoController(
	logger outbound.LoggerPort,
	synthesizer inbound.SpeechSynthesizerPort,
	formats config.FormatMap,
	cfg *config.DemoConfig,
) DemoController {
	return &demoController{
		logger:      logger,
		synthesizer: synthesizer,
		formats:     formats,
		cfg:         cfg,
	}
}

// GenerateTTS handles GET /api/generate-tts. The text query parameter is the
// URL-encoded input, base64 wrapped so the demo page can put it in a URL.
func (d *demoController) GenerateTTS(c *gin.Context) {
	encodedText := c.Query("text")
	voice := c.Query("voice")

	if encodedText == "" || voice == "" {
		d.logger.Warn("Missing required demo parameters")
		writeDemoError(c, &domain.ValidationError{Message: "Missing required parameters: text or voice"})

		return
	}

	text, err := decodeDemoText(encodedText)
	if err != nil {
		writeDemoError(c, &domain.ValidationError{Message: "Failed to decode text parameter"})

		return
	}

	if utf8.RuneCountInString(text) > domain.MaxInputLength {
		d.logger.WarnWithFields("Input text too long", map[string]interface{}{
			"length": utf8.RuneCountInString(text),
		})
		writeDemoError(c, &domain.ValidationError{Message: "Input text too long. Maximum length is 4096 characters."})

		return
	}

	speed := 1.0
	if raw := c.Query("speed"); raw != "" {
		if parsed, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
			speed = parsed
		}
	}

	format := c.DefaultQuery("response_format", "mp3")

	result, err := d.synthesizer.Synthesize(c.Request.Context(), domain.SpeechRequest{
		Text:    text,
		Voice:   voice,
		Speed:   speed,
		Emotion: c.Query("emotion"),
		Format:  format,
		Demo:    true,
	})
	if err != nil {
		d.logger.Error(err, "Demo TTS API Error")
		writeDemoError(c, err)

		return
	}

	writeAudioResponse(c, result, d.formats)
}

// VoiceData serves the voice catalog the demo page renders.
func (d *demoController) VoiceData(c *gin.Context) {
	data, err := os.ReadFile(d.cfg.VoiceDataFile)
	if err != nil || !json.Valid(data) {
		d.logger.Error(err, "Failed to read voice data file")
		c.JSON(500, dto.DemoEnvelope{Code: 500, Message: "Failed to read voice data"})

		return
	}

	c.Data(200, "application/json", data)
}

func (d *demoController) DemoPage(c *gin.Context) {
	c.File(d.cfg.DemoPageFile)
}

func (d *demoController) Health(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(200, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   serviceVersion,
		"memoryUsage": gin.H{
			"rss":      fmt.Sprintf("%dMB", mem.Sys/1024/1024),
			"heapUsed": fmt.Sprintf("%dMB", mem.HeapAlloc/1024/1024),
		},
	})
}

func (d *demoController) RegisterRoutes(g *gin.Engine) {
	g.GET("/api/generate-tts", d.GenerateTTS)
	g.GET("/api/voice-data", d.VoiceData)
	g.GET("/", d.DemoPage)
	g.GET("/health", d.Health)
}

func writeDemoError(c *gin.Context, err error) {
	mapped := mapPipelineError(err)
	c.JSON(mapped.Status, mapped.ToDemoEnvelope())
}

// decodeDemoText reverses the demo page's encoding: base64 over the
// URL-encoded text.
func decodeDemoText(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	// PathUnescape, not QueryUnescape: a literal + in the payload is text,
	// not an encoded space.
	decoded, err := url.PathUnescape(string(raw))
	if err != nil {
		return "", err
	}

	return decoded, nil
}
