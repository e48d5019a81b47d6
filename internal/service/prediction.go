package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/observability"
	"github.com/shenikar/fire_monitoring_system/internal/prediction"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=prediction.go -destination=mocks/mock_prediction.go -package=mocks

const (
	// Параметры выборки для TopPredictions
	topPredictionThreshold = 50
	maxTopPredictions      = 100
)

// PredictionCache - кэш готовых прогнозов. Промах возвращает nil без ошибки.
type PredictionCache interface {
	GetPredictions(ctx context.Context, key string) (*models.PredictionResult, error)
	SetPredictions(ctx context.Context, key string, result *models.PredictionResult) error
	InvalidatePredictions(ctx context.Context) error
}

type PredictionService interface {
	Predict(ctx context.Context, q models.PredictQuery) (*models.PredictionResult, error)
	TopPredictions(ctx context.Context, regionID string, n int) ([]models.PredictionCell, error)
	ModelInfo() map[string]string
	Factors() []string
}

type predictionService struct {
	repo     FireRepository
	cache    PredictionCache
	engine   *prediction.Engine
	resolver *region.Resolver
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   *logrus.Logger
}

func NewPredictionService(
	repo FireRepository,
	cache PredictionCache,
	engine *prediction.Engine,
	resolver *region.Resolver,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *logrus.Logger,
) PredictionService {
	return &predictionService{
		repo:     repo,
		cache:    cache,
		engine:   engine,
		resolver: resolver,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
	}
}

// Predict строит прогноз риска для региона. Если история недоступна, возвращается
// ErrNoDataAvailable, либо демонстрационные данные при явном AllowDemoFallback.
func (s *predictionService) Predict(ctx context.Context, q models.PredictQuery) (*models.PredictionResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "prediction",
		"method":     "Predict",
		"region":     q.RegionID,
		"date_range": q.DateRange,
		"threshold":  q.ConfidenceThreshold,
	})

	if q.ConfidenceThreshold < models.MinConfidenceThreshold || q.ConfidenceThreshold > models.MaxConfidenceThreshold {
		err := fmt.Errorf("%w: confidence threshold must be within %d-%d",
			models.ErrValidation, models.MinConfidenceThreshold, models.MaxConfidenceThreshold)
		log.WithError(err).Warn("Invalid confidence threshold")
		return nil, err
	}

	now := s.clock.Now().UTC()
	window, err := prediction.ResolveWindow(q.DateRange, q.CustomStart, q.CustomEnd, now)
	if err != nil {
		log.WithError(err).Warn("Invalid prediction window")
		return nil, err
	}

	reg, err := s.resolver.Resolve(q.RegionID)
	if err != nil {
		log.WithError(err).Warn("Unknown region")
		return nil, err
	}

	dateRange := q.DateRange
	if dateRange == "" {
		dateRange = models.PredictionNext7Days
	}
	cacheKey := fmt.Sprintf("%s:%s:%s:%d",
		reg.ID, window.Start.Format(models.DateLayout), window.End.Format(models.DateLayout), q.ConfidenceThreshold)

	cached, err := s.cache.GetPredictions(ctx, cacheKey)
	if err != nil {
		log.WithError(err).Warn("Failed to read prediction cache")
	}
	if cached != nil {
		s.metrics.PredictionCache.WithLabelValues("hit").Inc()
		cached.DateRange = dateRange
		log.Info("Predictions served from cache")
		return cached, nil
	}
	s.metrics.PredictionCache.WithLabelValues("miss").Inc()

	provenance := models.ProvenanceHistorical
	history, err := s.repo.ListInBounds(ctx, reg.QueryBounds(), models.SatelliteSources())
	if err != nil {
		if !q.AllowDemoFallback {
			log.WithError(err).Error("Historical data unavailable")
			return nil, fmt.Errorf("service: could not load history: %w: %v", models.ErrNoDataAvailable, err)
		}
		log.WithError(err).Warn("Historical data unavailable, using demo dataset")
		history = prediction.DemoHistory(reg, now)
		provenance = models.ProvenanceDemo
	} else {
		history = s.filterRegion(reg, history)
	}

	start := s.clock.Now()
	cells := s.engine.Predict(history, window, now, q.ConfidenceThreshold)
	s.metrics.PredictionDuration.Observe(s.clock.Since(start).Seconds())

	modelInfo := s.engine.ModelInfo()
	modelInfo["history_records"] = strconv.Itoa(len(history))

	result := &models.PredictionResult{
		Predictions: cells,
		Region:      reg.ID,
		DateRange:   dateRange,
		WindowStart: window.Start.Format(models.DateLayout),
		WindowEnd:   window.End.Format(models.DateLayout),
		Threshold:   q.ConfidenceThreshold,
		Provenance:  provenance,
		GeneratedAt: now,
		ModelInfo:   modelInfo,
	}

	// Демонстрационные данные не кэшируются
	if provenance == models.ProvenanceHistorical {
		if err := s.cache.SetPredictions(ctx, cacheKey, result); err != nil {
			log.WithError(err).Warn("Failed to cache predictions")
		}
	}

	log.WithFields(logrus.Fields{
		"predictions": len(cells),
		"history":     len(history),
		"provenance":  provenance,
	}).Info("Predictions generated successfully")
	return result, nil
}

// TopPredictions возвращает n ячеек с наибольшим риском на ближайшую неделю
func (s *predictionService) TopPredictions(ctx context.Context, regionID string, n int) ([]models.PredictionCell, error) {
	if n < 1 || n > maxTopPredictions {
		return nil, fmt.Errorf("%w: n must be within 1-%d", models.ErrValidation, maxTopPredictions)
	}

	result, err := s.Predict(ctx, models.PredictQuery{
		RegionID:            regionID,
		DateRange:           models.PredictionNext7Days,
		ConfidenceThreshold: topPredictionThreshold,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Predictions) > n {
		return result.Predictions[:n], nil
	}
	return result.Predictions, nil
}

// ModelInfo описывает модель и допустимые параметры запроса
func (s *predictionService) ModelInfo() map[string]string {
	info := s.engine.ModelInfo()
	info["confidence_range"] = fmt.Sprintf("%d-%d", models.MinConfidenceThreshold, models.MaxConfidenceThreshold)
	info["time_horizon"] = fmt.Sprintf("1-%d days ahead", models.MaxPredictionDays)
	info["risk_levels"] = strings.Join([]string{
		string(models.RiskLow), string(models.RiskMedium), string(models.RiskHigh), string(models.RiskCritical),
	}, ",")
	return info
}

func (s *predictionService) Factors() []string {
	return s.engine.Factors()
}

func (s *predictionService) filterRegion(reg region.Region, history []*models.FireRecord) []*models.FireRecord {
	if reg.IsAggregate() {
		return history
	}
	out := make([]*models.FireRecord, 0, len(history))
	for _, rec := range history {
		if s.resolver.Contains(reg, rec.Latitude, rec.Longitude) {
			out = append(out, rec)
		}
	}
	return out
}
