package handlers

import (
	"context"

	"cyberguard-ai/internal/domain/models"
	"cyberguard-ai/internal/domain/services/ai"
	"cyberguard-ai/internal/infrastructure/cache"
	"cyberguard-ai/pkg/logger"
)

// AnalyzerService is the analysis surface the handlers depend on.
// *ai.Analyzer is the production implementation.
type AnalyzerService interface {
	Available() bool
	AnalyzeImage(ctx context.Context, dataURL string) (models.AnalysisResult, error)
	AnalyzeAudio(ctx context.Context, meta ai.AudioMetadata) (models.AnalysisResult, error)
	AnalyzeVideoFrames(ctx context.Context, frames []string) (models.AnalysisResult, error)
	CheckPhone(ctx context.Context, raw, cleaned string) (models.AnalysisResult, error)
	CheckLocation(ctx context.Context, latitude, longitude float64) (models.AnalysisResult, error)
}

// Handlers holds all API handlers
type Handlers struct {
	Health *HealthHandler
	Scan   *ScanHandler
	Check  *CheckHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Analyzer AnalyzerService
	Cache    *cache.RedisCache
	Logger   *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Analyzer, deps.Cache, deps.Logger),
		Scan:   NewScanHandler(deps.Analyzer, deps.Logger),
		Check:  NewCheckHandler(deps.Analyzer, deps.Logger),
	}
}
