package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/lizhe2004/xunjie-tts-open-api/application/services"
	"github.com/lizhe2004/xunjie-tts-open-api/config"
	"github.com/lizhe2004/xunjie-tts-open-api/infrastructure/adapters"
	"github.com/lizhe2004/xunjie-tts-open-api/infrastructure/gin_interface/controllers"
	"github.com/lizhe2004/xunjie-tts-open-api/middleware"
)

func main() {
	// Optional .env file; real deployments set the environment directly.
	_ = godotenv.Load()

	upstreamConfig, err := config.GetUpstreamConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get upstream config")
	}

	pollConfig, err := config.GetPollConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get poll config")
	}

	cacheConfig, err := config.GetCacheConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get cache config")
	}

	authConfig, err := config.GetAuthConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get auth config")
	}

	rateLimitConfig, err := config.GetRateLimitConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get rate limit config")
	}

	serverConfig := config.GetServerConfig()
	demoConfig := config.GetDemoConfig()
	voiceMapping := config.GetVoiceMapping()
	formatMapping := config.GetFormatMapping()

	zeroLogger := adapters.NewZerologWrapper(config.GetLoggingConfig())

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	audioCache := adapters.NewMemoryCache(cacheConfig, workerPool, zeroLogger)

	upstreamClient := adapters.NewHudunsoftClient(upstreamConfig, voiceMapping, authConfig.APIKey, zeroLogger)

	taskPoller := adapters.NewTaskPoller(upstreamConfig, pollConfig, zeroLogger)

	audioFetcher := adapters.NewAudioFetcher(zeroLogger)

	transcoder := adapters.NewFFMPEGTranscoder(zeroLogger)

	speechPipeline := services.NewSpeechPipeline(
		zeroLogger, upstreamClient, taskPoller, audioFetcher, transcoder, audioCache, cacheConfig.Enabled)

	speechController := controllers.NewSpeechController(zeroLogger, speechPipeline, formatMapping)
	demoController := controllers.NewDemoController(zeroLogger, speechPipeline, formatMapping, demoConfig)

	router := gin.New()
	router.Use(gin.Recovery())

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(cors.Default())
	router.Use(middleware.RequestLogger(zeroLogger))

	authHandler := middleware.NewAuthHandler(authConfig, zeroLogger)
	rateLimitHandler := middleware.NewRateLimitHandler(rateLimitConfig, zeroLogger)

	if rateLimitConfig.Enabled {
		zeroLogger.InfoWithFields("Rate limiting enabled", map[string]interface{}{
			"max":       rateLimitConfig.Max,
			"window_ms": rateLimitConfig.Window.Milliseconds(),
		})
	}
	if authConfig.Enabled {
		zeroLogger.Info("API authentication enabled")
	}

	// The limiter runs before auth so unauthenticated floods are throttled.
	speechController.RegisterRoutes(router, rateLimitHandler.RateLimitMiddleware(), authHandler.AuthMiddleware())
	demoController.RegisterRoutes(router)

	addr := serverConfig.Host + ":" + serverConfig.Port

	zeroLogger.InfoWithFields("OpenAI-compatible TTS API started", map[string]interface{}{
		"addr":         addr,
		"upstream_url": upstreamConfig.URL,
	})

	err = router.Run(addr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
