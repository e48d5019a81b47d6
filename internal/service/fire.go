package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=fire.go -destination=mocks/mock_fire.go -package=mocks

// FireRepository определяет контракт хранилища обнаружений
type FireRepository interface {
	UpsertMany(ctx context.Context, records []*models.FireRecord) (models.UpsertResult, error)
	Query(ctx context.Context, start, end time.Time, sources []models.Source) ([]*models.FireRecord, error)
	ListInBounds(ctx context.Context, bounds region.BoundingBox, sources []models.Source) ([]*models.FireRecord, error)
	InsertReport(ctx context.Context, record *models.FireRecord) error
	Summarize(ctx context.Context, bounds region.BoundingBox) (*models.FireSummary, error)
	AvailableDateRange(ctx context.Context) (*models.DateRange, error)
}

// FireService - исторические запросы и статистика по обнаружениям
type FireService interface {
	Detect(ctx context.Context, q models.DetectQuery) (*models.DetectResult, error)
	Summarize(ctx context.Context, regionID string) (*models.FireSummary, error)
	AvailableDateRange(ctx context.Context) (*models.DateRange, error)
	Regions() []region.Region
}

type fireService struct {
	repo     FireRepository
	resolver *region.Resolver
	clock    clockwork.Clock
	logger   *logrus.Logger
}

func NewFireService(repo FireRepository, resolver *region.Resolver, clock clockwork.Clock, logger *logrus.Logger) FireService {
	return &fireService{
		repo:     repo,
		resolver: resolver,
		clock:    clock,
		logger:   logger,
	}
}

// Detect возвращает обнаружения за окно дат в пределах региона.
// Вся валидация выполняется до обращения к хранилищу.
func (s *fireService) Detect(ctx context.Context, q models.DetectQuery) (*models.DetectResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "fire",
		"method":     "Detect",
		"region":     q.RegionID,
		"date_range": q.DateRange,
	})

	start, end, err := resolveDetectRange(q, s.clock.Now())
	if err != nil {
		log.WithError(err).Warn("Invalid date range")
		return nil, err
	}

	reg, err := s.resolver.Resolve(q.RegionID)
	if err != nil {
		log.WithError(err).Warn("Unknown region")
		return nil, err
	}

	sources, err := normalizeSources(q.Sources)
	if err != nil {
		log.WithError(err).Warn("Invalid sources")
		return nil, err
	}

	records, err := s.repo.Query(ctx, start, end, sources)
	if err != nil {
		log.WithError(err).Error("Failed to query fire records from repository")
		return nil, fmt.Errorf("service: could not query fire records: %w", err)
	}

	filtered := make([]*models.FireRecord, 0, len(records))
	for _, rec := range records {
		if s.resolver.Contains(reg, rec.Latitude, rec.Longitude) {
			filtered = append(filtered, rec)
		}
	}

	log.WithFields(logrus.Fields{
		"total_count":    len(records),
		"filtered_count": len(filtered),
	}).Info("Fire detections fetched successfully")

	dateRange := q.DateRange
	if dateRange == "" {
		dateRange = models.DetectRange24h
	}
	return &models.DetectResult{
		Fires:         filtered,
		TotalCount:    len(records),
		FilteredCount: len(filtered),
		Region:        reg.ID,
		DateRange:     dateRange,
		Start:         start,
		End:           end,
	}, nil
}

// Summarize возвращает агрегированную статистику по региону
func (s *fireService) Summarize(ctx context.Context, regionID string) (*models.FireSummary, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "fire",
		"method":  "Summarize",
		"region":  regionID,
	})

	reg, err := s.resolver.Resolve(regionID)
	if err != nil {
		log.WithError(err).Warn("Unknown region")
		return nil, err
	}

	summary, err := s.repo.Summarize(ctx, reg.QueryBounds())
	if err != nil {
		log.WithError(err).Error("Failed to summarize fire records")
		return nil, fmt.Errorf("service: could not summarize fire records: %w", err)
	}
	summary.Region = reg.ID

	log.WithField("total_fires", summary.TotalFires).Info("Fire statistics computed")
	return summary, nil
}

// AvailableDateRange возвращает границы хранимой истории
func (s *fireService) AvailableDateRange(ctx context.Context) (*models.DateRange, error) {
	dr, err := s.repo.AvailableDateRange(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "fire",
			"method":  "AvailableDateRange",
		}).WithError(err).Error("Failed to get available date range")
		return nil, fmt.Errorf("service: could not get available date range: %w", err)
	}
	return dr, nil
}

func (s *fireService) Regions() []region.Region {
	return s.resolver.List()
}

// resolveDetectRange переводит именованный диапазон в даты [start, end].
// 24hr - вчера и сегодня, 7day - семь дней до сегодня, custom - явные границы.
func resolveDetectRange(q models.DetectQuery, now time.Time) (time.Time, time.Time, error) {
	today := models.TruncateDay(now)

	var start, end time.Time
	switch strings.ToLower(strings.TrimSpace(q.DateRange)) {
	case "", models.DetectRange24h:
		start, end = today.AddDate(0, 0, -1), today
	case models.DetectRange7Day:
		start, end = today.AddDate(0, 0, -7), today
	case models.DetectRangeCustom:
		if q.CustomStart == "" || q.CustomEnd == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: custom range requires both start and end dates", models.ErrInvalidRange)
		}
		var err error
		if start, err = models.ParseDate(q.CustomStart); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", models.ErrInvalidRange, err)
		}
		if end, err = models.ParseDate(q.CustomEnd); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", models.ErrInvalidRange, err)
		}
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown date range %q", models.ErrInvalidRange, q.DateRange)
	}

	if err := models.ValidateQueryRange(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// normalizeSources проверяет источники; пустой список означает оба спутниковых сенсора
func normalizeSources(sources []models.Source) ([]models.Source, error) {
	if len(sources) == 0 {
		return models.SatelliteSources(), nil
	}
	out := make([]models.Source, 0, len(sources))
	seen := make(map[models.Source]bool, len(sources))
	for _, src := range sources {
		parsed, err := models.ParseSource(string(src))
		if err != nil {
			return nil, err
		}
		if !seen[parsed] {
			seen[parsed] = true
			out = append(out, parsed)
		}
	}
	return out, nil
}
