package ai

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"cyberguard-ai/internal/config"
	"cyberguard-ai/internal/domain/models"
	"cyberguard-ai/internal/infrastructure/cache"
	"cyberguard-ai/pkg/logger"
)

// CompletionClient is the completion API the analyzer depends on.
// *GroqClient is the production implementation.
type CompletionClient interface {
	Available() bool
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Analyzer orchestrates the per-domain analysis flow: build prompt, call
// the completion client with model fallback, normalize the completion.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	client CompletionClient
	cache  *cache.RedisCache // optional, nil disables result caching
	cfg    config.AnalysisConfig
	logger *logger.Logger
}

// NewAnalyzer creates an analyzer. redisCache may be nil.
func NewAnalyzer(client CompletionClient, redisCache *cache.RedisCache, cfg config.AnalysisConfig, log *logger.Logger) *Analyzer {
	if cfg.MaxFrameCalls <= 0 {
		cfg.MaxFrameCalls = 5
	}
	return &Analyzer{
		client: client,
		cache:  redisCache,
		cfg:    cfg,
		logger: log.WithComponent("analyzer"),
	}
}

// Available reports whether the completion client holds a usable API key.
func (a *Analyzer) Available() bool {
	return a.client.Available()
}

// AnalyzeImage screens an uploaded image (metadata only) for scam signals.
func (a *Analyzer) AnalyzeImage(ctx context.Context, dataURL string) (models.AnalysisResult, error) {
	meta := ImageMetadataFromDataURL(dataURL)
	return a.analyze(ctx, models.DomainImage, dataURL, BuildImagePrompt(meta), MaxTokensDefault)
}

// AnalyzeAudio screens a phone-call recording described by its metadata.
func (a *Analyzer) AnalyzeAudio(ctx context.Context, meta AudioMetadata) (models.AnalysisResult, error) {
	cacheInput := fmt.Sprintf("%s:%d:%s", meta.FileName, meta.SizeBytes, meta.MimeType)
	return a.analyze(ctx, models.DomainAudio, cacheInput, BuildAudioPrompt(meta), MaxTokensDefault)
}

// CheckPhone assesses a phone number. cleaned is the number with spaces,
// dashes and parentheses stripped.
func (a *Analyzer) CheckPhone(ctx context.Context, raw, cleaned string) (models.AnalysisResult, error) {
	return a.analyze(ctx, models.DomainPhone, cleaned, BuildPhonePrompt(raw, cleaned), MaxTokensDefault)
}

// CheckLocation assesses a coordinate pair for area safety.
func (a *Analyzer) CheckLocation(ctx context.Context, latitude, longitude float64) (models.AnalysisResult, error) {
	cacheInput := fmt.Sprintf("%v,%v", latitude, longitude)
	return a.analyze(ctx, models.DomainLocation, cacheInput, BuildLocationPrompt(latitude, longitude), MaxTokensDefault)
}

// AnalyzeVideoFrames screens a batch of extracted video frames. Each frame
// gets its own completion call (bounded concurrency), then one aggregation
// call produces the final verdict. Any frame failure fails the whole
// batch; there is no partial-result tolerance.
func (a *Analyzer) AnalyzeVideoFrames(ctx context.Context, frames []string) (models.AnalysisResult, error) {
	scanID := uuid.New().String()
	log := a.logger.WithScanID(scanID)

	cacheInput := fmt.Sprintf("%d:%s", len(frames), joinForHash(frames))
	if result, ok := a.cachedResult(ctx, models.DomainVideo, cacheInput); ok {
		log.Debug().Msg("video analysis served from cache")
		return result, nil
	}

	analyses := make([]string, len(frames))
	errs := make([]error, len(frames))

	sem := make(chan struct{}, a.cfg.MaxFrameCalls)
	var wg sync.WaitGroup
	for i, frame := range frames {
		wg.Add(1)
		go func(idx int, f string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			meta := ImageMetadataFromDataURL(f)
			prompt := BuildFramePrompt(meta, idx+1, len(frames))
			completion, err := a.client.Complete(ctx, prompt, MaxTokensFrame)
			if err != nil {
				errs[idx] = fmt.Errorf("frame %d: %w", idx+1, err)
				return
			}
			analyses[idx] = completion
		}(i, frame)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Error().Err(err).Int("frames", len(frames)).Msg("frame analysis failed")
			return models.AnalysisResult{}, err
		}
	}

	completion, err := a.client.Complete(ctx, BuildVideoAggregationPrompt(analyses), MaxTokensDefault)
	if err != nil {
		log.Error().Err(err).Msg("video aggregation failed")
		return models.AnalysisResult{}, err
	}

	result := Normalize(models.DomainVideo, completion)
	a.storeResult(ctx, models.DomainVideo, cacheInput, result)

	log.Info().
		Int("frames", len(frames)).
		Str("status", string(result.Status)).
		Int("confidence", result.Confidence).
		Msg("video analyzed")
	return result, nil
}

// analyze is the shared single-call flow: cache lookup, completion with
// model fallback, normalization, cache store.
func (a *Analyzer) analyze(ctx context.Context, domain models.Domain, cacheInput, prompt string, maxTokens int) (models.AnalysisResult, error) {
	scanID := uuid.New().String()
	log := a.logger.WithScanID(scanID)

	if result, ok := a.cachedResult(ctx, domain, cacheInput); ok {
		log.Debug().Str("domain", string(domain)).Msg("analysis served from cache")
		return result, nil
	}

	completion, err := a.client.Complete(ctx, prompt, maxTokens)
	if err != nil {
		log.Error().Err(err).Str("domain", string(domain)).Msg("completion failed")
		return models.AnalysisResult{}, err
	}

	result := Normalize(domain, completion)
	a.storeResult(ctx, domain, cacheInput, result)

	log.Info().
		Str("domain", string(domain)).
		Str("status", string(result.Status)).
		Int("confidence", result.Confidence).
		Msg("analysis completed")
	return result, nil
}

func (a *Analyzer) cachedResult(ctx context.Context, domain models.Domain, input string) (models.AnalysisResult, bool) {
	if a.cache == nil || !a.cfg.CacheEnabled {
		return models.AnalysisResult{}, false
	}
	var result models.AnalysisResult
	if err := a.cache.GetAnalysis(ctx, cacheKey(domain, input), &result); err != nil {
		return models.AnalysisResult{}, false
	}
	return result, true
}

func (a *Analyzer) storeResult(ctx context.Context, domain models.Domain, input string, result models.AnalysisResult) {
	if a.cache == nil || !a.cfg.CacheEnabled {
		return
	}
	// Best effort: a cache write failure never fails the request.
	if err := a.cache.SetAnalysis(ctx, cacheKey(domain, input), result, a.cfg.CacheTTL); err != nil {
		a.logger.Warn().Err(err).Str("domain", string(domain)).Msg("failed to cache analysis result")
	}
}

func cacheKey(domain models.Domain, input string) string {
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%s:%x", domain, sum)
}

func joinForHash(frames []string) string {
	h := sha256.New()
	for _, f := range frames {
		h.Write([]byte(f))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
