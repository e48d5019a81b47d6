//go:build integration

package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/shenikar/fire_monitoring_system/pkg/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// newTestPool поднимает PostgreSQL в контейнере и применяет миграции
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("fires"),
		tcpostgres.WithUsername("fire"),
		tcpostgres.WithPassword("fire"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	m, err := migrate.New("file://../../migrations", strings.Replace(dsn, "postgres://", "pgx5://", 1))
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}

	pool, err := postgres.NewPostgresDB(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func testDetection(t *testing.T, source models.Source, lat, lon float64, date, hhmm string, confidence int) *models.FireRecord {
	t.Helper()
	acq, err := models.ParseAcquisition(date, hhmm)
	require.NoError(t, err)
	frp := 12.5
	return &models.FireRecord{
		ID:          models.BuildRecordID(source, lat, lon, date, hhmm),
		Latitude:    lat,
		Longitude:   lon,
		Brightness:  320.4,
		Confidence:  confidence,
		AcqDate:     date,
		AcqTime:     hhmm,
		AcqDatetime: acq,
		Source:      source,
		FRP:         &frp,
		State:       "punjab",
	}
}

func TestFireRepository_UpsertIsIdempotent(t *testing.T) {
	repo := NewFireRepository(newTestPool(t))
	ctx := context.Background()

	batch := []*models.FireRecord{
		testDetection(t, models.SourceMODIS, 30.9, 75.8, "2025-06-01", "0530", 85),
		testDetection(t, models.SourceVIIRS, 31.6, 74.9, "2025-06-01", "0815", 60),
	}

	first, err := repo.UpsertMany(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)
	assert.ElementsMatch(t, []string{batch[0].ID, batch[1].ID}, first.InsertedIDs)

	second, err := repo.UpsertMany(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, models.UpsertResult{Skipped: 2}, second)

	// Изменённая уверенность при том же ID приводит к обновлению
	changed := testDetection(t, models.SourceMODIS, 30.9, 75.8, "2025-06-01", "0530", 90)
	third, err := repo.UpsertMany(ctx, []*models.FireRecord{changed})
	require.NoError(t, err)
	assert.Equal(t, models.UpsertResult{Updated: 1}, third)
}

func TestFireRepository_QueryRangeAndSources(t *testing.T) {
	repo := NewFireRepository(newTestPool(t))
	ctx := context.Background()

	_, err := repo.UpsertMany(ctx, []*models.FireRecord{
		testDetection(t, models.SourceMODIS, 30.9, 75.8, "2025-06-01", "0530", 85),
		testDetection(t, models.SourceVIIRS, 31.6, 74.9, "2025-06-02", "0815", 60),
		testDetection(t, models.SourceMODIS, 26.8, 80.9, "2025-07-10", "0700", 70),
	})
	require.NoError(t, err)

	start, _ := models.ParseDate("2025-06-01")
	end, _ := models.ParseDate("2025-07-01")
	records, err := repo.Query(ctx, start, end, models.SatelliteSources())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-02", records[0].AcqDate)
	assert.Equal(t, models.SourceVIIRS, records[0].Source)

	records, err = repo.Query(ctx, start, end, []models.Source{models.SourceMODIS})
	require.NoError(t, err)
	require.Len(t, records, 1)

	tooLong, _ := models.ParseDate("2025-07-03")
	_, err = repo.Query(ctx, start, tooLong, models.SatelliteSources())
	assert.ErrorIs(t, err, models.ErrInvalidRange)
}

func TestFireRepository_ReportsAndSummary(t *testing.T) {
	repo := NewFireRepository(newTestPool(t))
	ctx := context.Background()

	_, err := repo.UpsertMany(ctx, []*models.FireRecord{
		testDetection(t, models.SourceMODIS, 30.9, 75.8, "2025-06-01", "0530", 85),
	})
	require.NoError(t, err)

	now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	report := &models.FireRecord{
		ID:          "USER_REPORTED_test",
		Latitude:    30.7,
		Longitude:   76.7,
		Brightness:  models.SeverityHigh.NominalBrightness(),
		Confidence:  models.UserReportConfidence,
		AcqDate:     now.Format(models.DateLayout),
		AcqTime:     now.Format("1504"),
		AcqDatetime: now,
		Source:      models.SourceUserReported,
		Report:      &models.ReportDetails{Severity: models.SeverityHigh, Description: "smoke over fields"},
	}
	require.NoError(t, repo.InsertReport(ctx, report))
	assert.False(t, report.CreatedAt.IsZero())

	punjab, err := region.NewResolver().Resolve("punjab")
	require.NoError(t, err)

	all, err := repo.ListInBounds(ctx, punjab.Bounds, models.AllSources())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[1].Report)
	assert.Equal(t, models.SeverityHigh, all[1].Report.Severity)

	summary, err := repo.Summarize(ctx, punjab.Bounds)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalFires)
	assert.Equal(t, 1, summary.HighConfidenceFires)
	assert.Equal(t, 1, summary.BySource["MODIS"])
	assert.Equal(t, 1, summary.BySource["USER_REPORTED"])
	assert.Equal(t, 1, summary.BySeverity["medium"])
	assert.Equal(t, "2025-06-01", summary.FirstDetection)

	dr, err := repo.AvailableDateRange(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", dr.MinDate)
	assert.Equal(t, "2025-06-03", dr.MaxDate)
	assert.Equal(t, 2, dr.TotalCount)
}
