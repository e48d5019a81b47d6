package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/config"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/observability"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/shenikar/fire_monitoring_system/internal/service/mocks"
	"github.com/shenikar/fire_monitoring_system/internal/webhook"
	webhook_mocks "github.com/shenikar/fire_monitoring_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)

type ingestionMocks struct {
	feed      *mocks.MockFeedClient
	repo      *mocks.MockFireRepository
	cache     *mocks.MockPredictionCache
	publisher *webhook_mocks.MockAlertPublisher
}

// newTestIngestionService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIngestionService(t *testing.T) (*ingestionService, ingestionMocks) {
	ctrl := gomock.NewController(t)
	m := ingestionMocks{
		feed:      mocks.NewMockFeedClient(ctrl),
		repo:      mocks.NewMockFireRepository(ctrl),
		cache:     mocks.NewMockPredictionCache(ctrl),
		publisher: webhook_mocks.NewMockAlertPublisher(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{AlertMinConfidence: 80}

	svc := NewIngestionService(m.feed, m.repo, m.cache, m.publisher, region.NewResolver(),
		clockwork.NewFakeClockAt(testNow), observability.NewMetricsForTesting(), logger, cfg)
	return svc.(*ingestionService), m
}

func rawRow(lat, lon, confidence, hhmm string) models.RawDetection {
	return models.RawDetection{
		Latitude:   lat,
		Longitude:  lon,
		Brightness: "330.5",
		Confidence: confidence,
		AcqDate:    "2025-10-15",
		AcqTime:    hhmm,
		FRP:        "12.4",
	}
}

func TestIngest_SecondCycleIsIdempotent(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	ctx := context.Background()
	rows := []models.RawDetection{
		rawRow("30.9012", "75.8534", "85", "0512"),
		rawRow("29.1000", "76.2000", "40", "0512"),
	}

	// Ожидания
	m.feed.EXPECT().Fetch(ctx, models.SourceMODIS, models.WindowRecent24h).Return(rows, nil).Times(2)
	m.feed.EXPECT().Fetch(ctx, models.SourceVIIRS, models.WindowRecent24h).Return(nil, nil).Times(2)

	first := m.repo.EXPECT().UpsertMany(ctx, gomock.Len(2)).
		DoAndReturn(func(_ context.Context, records []*models.FireRecord) (models.UpsertResult, error) {
			ids := make([]string, len(records))
			for i, r := range records {
				ids[i] = r.ID
			}
			return models.UpsertResult{Inserted: 2, InsertedIDs: ids}, nil
		})
	m.repo.EXPECT().UpsertMany(ctx, gomock.Len(2)).Return(models.UpsertResult{Skipped: 2}, nil).After(first)

	// Кэш сбрасывается и оповещение уходит только после первого цикла
	m.cache.EXPECT().InvalidatePredictions(ctx).Return(nil).Times(1)
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event webhook.AlertEvent) error {
			require.Len(t, event.Fires, 1)
			assert.Equal(t, "MODIS_30.9012_75.8534_2025-10-15_0512", event.Fires[0].ID)
			assert.NotEmpty(t, event.EventID)
			return nil
		}).Times(1)

	// Действие
	summary, err := svc.Ingest(ctx, models.WindowRecent24h)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Inserted)

	summary, err = svc.Ingest(ctx, models.WindowRecent24h)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IngestDone, summary.State)
	assert.Equal(t, models.UpstreamOK, summary.UpstreamStatus)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 2, summary.Duplicates)
	assert.Equal(t, 2, summary.TotalReceived)
}

func TestIngest_InBatchDuplicates(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	ctx := context.Background()
	rows := []models.RawDetection{
		rawRow("30.9012", "75.8534", "70", "0512"),
		rawRow("29.1000", "76.2000", "70", "0512"),
		rawRow("30.9012", "75.8534", "70", "512"),
	}

	// Ожидания
	m.feed.EXPECT().Fetch(ctx, models.SourceMODIS, models.WindowRecent7d).Return(rows, nil)
	m.feed.EXPECT().Fetch(ctx, models.SourceVIIRS, models.WindowRecent7d).Return([]models.RawDetection{}, nil)
	m.repo.EXPECT().UpsertMany(ctx, gomock.Len(2)).Return(models.UpsertResult{Inserted: 2}, nil)
	m.cache.EXPECT().InvalidatePredictions(ctx).Return(nil)

	// Действие
	summary, err := svc.Ingest(ctx, models.WindowRecent7d)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalReceived)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 0, summary.Dropped)
}

func TestIngest_BatchWithAlreadyStoredRecord(t *testing.T) {
	// Подготовка: одна из трёх записей уже есть в хранилище
	svc, m := newTestIngestionService(t)
	ctx := context.Background()
	rows := []models.RawDetection{
		rawRow("30.9012", "75.8534", "70", "0512"),
		rawRow("29.1000", "76.2000", "70", "0512"),
		rawRow("28.7000", "77.1000", "70", "0630"),
	}

	// Ожидания
	m.feed.EXPECT().Fetch(ctx, models.SourceMODIS, models.WindowRecent24h).Return(rows, nil)
	m.feed.EXPECT().Fetch(ctx, models.SourceVIIRS, models.WindowRecent24h).Return(nil, nil)
	m.repo.EXPECT().UpsertMany(ctx, gomock.Len(3)).Return(models.UpsertResult{Inserted: 2, Skipped: 1}, nil)
	m.cache.EXPECT().InvalidatePredictions(ctx).Return(nil)

	// Действие
	summary, err := svc.Ingest(ctx, models.WindowRecent24h)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalReceived)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Dropped)
}

func TestIngest_AllSourcesUnavailable(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	ctx := context.Background()
	upstreamErr := errors.New("upstream feed unavailable: 503")

	// Ожидания: хранилище не трогается
	m.feed.EXPECT().Fetch(ctx, gomock.Any(), models.WindowRecent24h).Return(nil, upstreamErr).Times(2)

	// Действие
	summary, err := svc.Ingest(ctx, models.WindowRecent24h)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IngestFailed, summary.State)
	assert.Equal(t, models.UpstreamUnavailable, summary.UpstreamStatus)
	assert.Equal(t, models.UpstreamUnavailable, summary.Sources[models.SourceMODIS].Status)
	assert.Equal(t, models.UpstreamUnavailable, summary.Sources[models.SourceVIIRS].Status)
	assert.Equal(t, 0, summary.Inserted)
	assert.False(t, summary.FinishedAt.IsZero())
}

func TestIngest_PartialUpstream(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	ctx := context.Background()

	// Ожидания
	m.feed.EXPECT().Fetch(ctx, models.SourceMODIS, models.WindowRecent24h).Return(nil, errors.New("timeout"))
	m.feed.EXPECT().Fetch(ctx, models.SourceVIIRS, models.WindowRecent24h).
		Return([]models.RawDetection{rawRow("30.9012", "75.8534", "n", "0830")}, nil)
	m.repo.EXPECT().UpsertMany(ctx, gomock.Len(1)).Return(models.UpsertResult{Updated: 1}, nil)
	m.cache.EXPECT().InvalidatePredictions(ctx).Return(nil)

	// Действие
	summary, err := svc.Ingest(ctx, models.WindowRecent24h)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IngestDone, summary.State)
	assert.Equal(t, models.UpstreamPartial, summary.UpstreamStatus)
	assert.Equal(t, "timeout", summary.Sources[models.SourceMODIS].Error)
	assert.Equal(t, 1, summary.Sources[models.SourceVIIRS].Received)
	assert.Equal(t, 1, summary.Updated)
}

func TestIngest_MalformedRowsDropped(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	ctx := context.Background()
	rows := []models.RawDetection{
		rawRow("30.9012", "75.8534", "70", "0512"),
		rawRow("", "75.8534", "70", "0512"),
		rawRow("10.0000", "75.8534", "70", "0512"),
		rawRow("30.9012", "75.8534", "abc", "0600"),
	}

	// Ожидания
	m.feed.EXPECT().Fetch(ctx, models.SourceMODIS, models.WindowRecent24h).Return(rows, nil)
	m.feed.EXPECT().Fetch(ctx, models.SourceVIIRS, models.WindowRecent24h).Return(nil, nil)
	m.repo.EXPECT().UpsertMany(ctx, gomock.Len(1)).Return(models.UpsertResult{Skipped: 1}, nil)

	// Действие
	summary, err := svc.Ingest(ctx, models.WindowRecent24h)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalReceived)
	assert.Equal(t, 3, summary.Dropped)
	assert.Equal(t, 1, summary.Duplicates)
}

func TestIngest_RepositoryError(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	ctx := context.Background()
	dbErr := errors.New("connection reset")

	// Ожидания
	m.feed.EXPECT().Fetch(ctx, models.SourceMODIS, models.WindowRecent24h).
		Return([]models.RawDetection{rawRow("30.9012", "75.8534", "90", "0512")}, nil)
	m.feed.EXPECT().Fetch(ctx, models.SourceVIIRS, models.WindowRecent24h).Return(nil, nil)
	m.repo.EXPECT().UpsertMany(ctx, gomock.Any()).Return(models.UpsertResult{}, dbErr)

	// Действие
	summary, err := svc.Ingest(ctx, models.WindowRecent24h)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, models.IngestFailed, summary.State)
}

func TestIngest_PublishFailureDoesNotFailCycle(t *testing.T) {
	// Подготовка
	svc, m := newTestIngestionService(t)
	ctx := context.Background()
	row := rawRow("30.9012", "75.8534", "95", "0512")

	// Ожидания
	m.feed.EXPECT().Fetch(ctx, models.SourceMODIS, models.WindowRecent24h).Return([]models.RawDetection{row}, nil)
	m.feed.EXPECT().Fetch(ctx, models.SourceVIIRS, models.WindowRecent24h).Return(nil, nil)
	m.repo.EXPECT().UpsertMany(ctx, gomock.Len(1)).
		Return(models.UpsertResult{Inserted: 1, InsertedIDs: []string{"MODIS_30.9012_75.8534_2025-10-15_0512"}}, nil)
	m.cache.EXPECT().InvalidatePredictions(ctx).Return(errors.New("redis down"))
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("redis down"))

	// Действие
	summary, err := svc.Ingest(ctx, models.WindowRecent24h)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IngestDone, summary.State)
	assert.Equal(t, 1, summary.Inserted)
}

func TestIngest_InvalidWindow(t *testing.T) {
	svc, _ := newTestIngestionService(t)

	_, err := svc.Ingest(context.Background(), models.IngestWindow("recent-1y"))

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}
