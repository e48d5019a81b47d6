package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/config"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/observability"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/shenikar/fire_monitoring_system/internal/webhook"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=ingestion.go -destination=mocks/mock_ingestion.go -package=mocks

// FeedClient - внешний фид спутниковых обнаружений
type FeedClient interface {
	Fetch(ctx context.Context, source models.Source, window models.IngestWindow) ([]models.RawDetection, error)
}

// IngestionService выполняет цикл загрузки: запрос фида, нормализация, сверка с хранилищем
type IngestionService interface {
	Ingest(ctx context.Context, window models.IngestWindow) (*models.IngestSummary, error)
}

type ingestionService struct {
	feed      FeedClient
	repo      FireRepository
	cache     PredictionCache
	publisher webhook.AlertPublisher
	resolver  *region.Resolver
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewIngestionService(
	feed FeedClient,
	repo FireRepository,
	cache PredictionCache,
	publisher webhook.AlertPublisher,
	resolver *region.Resolver,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *logrus.Logger,
	cfg *config.Config,
) IngestionService {
	return &ingestionService{
		feed:      feed,
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		resolver:  resolver,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

type sourceBatch struct {
	source models.Source
	rows   []models.RawDetection
	err    error
}

// Ingest проводит один цикл для всех спутниковых сенсоров. Недоступность фида
// не считается ошибкой: итог возвращается с состоянием Failed и
// UpstreamStatus=unavailable, а накопленная история продолжает обслуживаться.
func (s *ingestionService) Ingest(ctx context.Context, window models.IngestWindow) (*models.IngestSummary, error) {
	if _, err := models.ParseIngestWindow(string(window)); err != nil {
		return nil, err
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "ingestion",
		"method":  "Ingest",
		"window":  window,
	})
	summary := &models.IngestSummary{
		Window:    window,
		Sources:   make(map[models.Source]models.SourceIngestStatus),
		StartedAt: s.clock.Now().UTC(),
	}
	defer func() {
		summary.FinishedAt = s.clock.Now().UTC()
		s.metrics.IngestDuration.Observe(summary.FinishedAt.Sub(summary.StartedAt).Seconds())
		s.metrics.IngestCycles.WithLabelValues(string(summary.State)).Inc()
	}()

	s.transition(log, summary, models.IngestRequesting)
	batches := s.fetchAll(ctx, window)

	failed := 0
	for _, b := range batches {
		if b.err != nil {
			failed++
			summary.Sources[b.source] = models.SourceIngestStatus{Status: models.UpstreamUnavailable, Error: b.err.Error()}
			log.WithError(b.err).WithField("source", b.source).Warn("Source unavailable")
			continue
		}
		summary.Sources[b.source] = models.SourceIngestStatus{Status: models.UpstreamOK, Received: len(b.rows)}
		summary.TotalReceived += len(b.rows)
	}

	switch failed {
	case 0:
		summary.UpstreamStatus = models.UpstreamOK
	case len(batches):
		summary.UpstreamStatus = models.UpstreamUnavailable
		s.transition(log, summary, models.IngestFailed)
		return summary, nil
	default:
		summary.UpstreamStatus = models.UpstreamPartial
	}

	s.transition(log, summary, models.IngestNormalizing)
	records := s.normalizeAll(log, batches, summary)

	s.transition(log, summary, models.IngestReconciling)
	result := models.UpsertResult{}
	if len(records) > 0 {
		var err error
		result, err = s.repo.UpsertMany(ctx, records)
		if err != nil {
			log.WithError(err).Error("Failed to reconcile detections with repository")
			s.transition(log, summary, models.IngestFailed)
			return summary, fmt.Errorf("service: could not reconcile detections: %w", err)
		}
	}
	summary.Inserted = result.Inserted
	summary.Updated = result.Updated
	summary.Duplicates += result.Skipped

	s.metrics.IngestRecords.WithLabelValues("inserted").Add(float64(result.Inserted))
	s.metrics.IngestRecords.WithLabelValues("updated").Add(float64(result.Updated))
	s.metrics.IngestRecords.WithLabelValues("duplicate").Add(float64(summary.Duplicates))
	s.metrics.IngestRecords.WithLabelValues("dropped").Add(float64(summary.Dropped))

	if result.Inserted > 0 || result.Updated > 0 {
		if err := s.cache.InvalidatePredictions(ctx); err != nil {
			log.WithError(err).Warn("Failed to invalidate prediction cache")
		}
	}
	s.publishAlerts(ctx, log, window, records, result.InsertedIDs)

	s.transition(log, summary, models.IngestDone)
	log.WithFields(logrus.Fields{
		"received":   summary.TotalReceived,
		"dropped":    summary.Dropped,
		"inserted":   summary.Inserted,
		"updated":    summary.Updated,
		"duplicates": summary.Duplicates,
	}).Info("Ingestion cycle completed")
	return summary, nil
}

func (s *ingestionService) transition(log *logrus.Entry, summary *models.IngestSummary, next models.IngestState) {
	log.WithFields(logrus.Fields{"from": summary.State, "to": next}).Debug("Ingestion state transition")
	summary.State = next
}

// fetchAll опрашивает сенсоры параллельно. Ошибка одного сенсора не отменяет остальные.
func (s *ingestionService) fetchAll(ctx context.Context, window models.IngestWindow) []sourceBatch {
	sources := models.SatelliteSources()
	batches := make([]sourceBatch, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			rows, err := s.feed.Fetch(ctx, src, window)
			batches[i] = sourceBatch{source: src, rows: rows, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return batches
}

// normalizeAll нормализует строки и убирает повторы внутри одной выборки
func (s *ingestionService) normalizeAll(log *logrus.Entry, batches []sourceBatch, summary *models.IngestSummary) []*models.FireRecord {
	var records []*models.FireRecord
	byID := make(map[string]int)
	for _, b := range batches {
		if b.err != nil {
			continue
		}
		for _, raw := range b.rows {
			rec, err := normalizeDetection(raw, b.source, s.resolver)
			if err != nil {
				summary.Dropped++
				log.WithError(err).WithField("source", b.source).Debug("Dropped malformed detection")
				continue
			}
			if idx, seen := byID[rec.ID]; seen {
				summary.Duplicates++
				records[idx] = rec
				continue
			}
			byID[rec.ID] = len(records)
			records = append(records, rec)
		}
	}
	return records
}

// publishAlerts отправляет одно оповещение о новых уверенных обнаружениях. Ошибки только логируются.
func (s *ingestionService) publishAlerts(ctx context.Context, log *logrus.Entry, window models.IngestWindow, records []*models.FireRecord, insertedIDs []string) {
	if s.publisher == nil || len(insertedIDs) == 0 {
		return
	}

	inserted := make(map[string]struct{}, len(insertedIDs))
	for _, id := range insertedIDs {
		inserted[id] = struct{}{}
	}

	var fires []*models.FireRecord
	for _, rec := range records {
		if _, ok := inserted[rec.ID]; ok && rec.Confidence >= s.cfg.AlertMinConfidence {
			fires = append(fires, rec)
		}
	}
	if len(fires) == 0 {
		return
	}

	event := webhook.AlertEvent{
		EventID:   uuid.NewString(),
		Window:    window,
		Timestamp: s.clock.Now().UTC(),
		Fires:     fires,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish fire alert")
		return
	}
	s.metrics.AlertsPublished.Inc()
	log.WithField("fires", len(fires)).Info("Fire alert published")
}
