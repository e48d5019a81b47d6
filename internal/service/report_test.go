package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/shenikar/fire_monitoring_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReportService(t *testing.T) (*reportService, *mocks.MockFireRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockFireRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	svc := NewReportService(repoMock, region.NewResolver(), clockwork.NewFakeClockAt(testNow), logger)
	return svc.(*reportService), repoMock
}

func TestSubmit_Success(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestReportService(t)
	ctx := context.Background()
	area := 2.5
	report := models.UserReport{
		Latitude:  30.9012,
		Longitude: 75.8534,
		ReportDetails: models.ReportDetails{
			Severity:      models.SeverityHigh,
			Description:   "Stubble burning near the canal",
			EstimatedArea: &area,
		},
	}

	// Ожидания
	repoMock.EXPECT().InsertReport(ctx, gomock.Any()).Return(nil)

	// Действие
	record, err := svc.Submit(ctx, report)

	// Проверки
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(record.ID, "USER_REPORTED_"))
	assert.Equal(t, models.SourceUserReported, record.Source)
	assert.Equal(t, 360.0, record.Brightness)
	assert.Equal(t, models.UserReportConfidence, record.Confidence)
	assert.Equal(t, "2025-10-15", record.AcqDate)
	assert.Equal(t, "1200", record.AcqTime)
	assert.Equal(t, "punjab", record.State)
	require.NotNil(t, record.Report)
	assert.Equal(t, "Stubble burning near the canal", record.Report.Description)
}

func TestSubmit_SameCoordinatesNeverDeduplicated(t *testing.T) {
	svc, repoMock := newTestReportService(t)
	ctx := context.Background()
	report := models.UserReport{Latitude: 28.6, Longitude: 77.2, ReportDetails: models.ReportDetails{Severity: models.SeverityLow}}

	repoMock.EXPECT().InsertReport(ctx, gomock.Any()).Return(nil).Times(2)

	first, err := svc.Submit(ctx, report)
	require.NoError(t, err)
	second, err := svc.Submit(ctx, report)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	tooLarge := 1500.0
	negative := -1.0
	tests := []struct {
		name   string
		report models.UserReport
	}{
		{
			name:   "outside envelope",
			report: models.UserReport{Latitude: 12.97, Longitude: 77.59, ReportDetails: models.ReportDetails{Severity: models.SeverityLow}},
		},
		{
			name:   "unknown severity",
			report: models.UserReport{Latitude: 30.9, Longitude: 75.8, ReportDetails: models.ReportDetails{Severity: "Extreme"}},
		},
		{
			name:   "area too large",
			report: models.UserReport{Latitude: 30.9, Longitude: 75.8, ReportDetails: models.ReportDetails{Severity: models.SeverityLow, EstimatedArea: &tooLarge}},
		},
		{
			name:   "negative area",
			report: models.UserReport{Latitude: 30.9, Longitude: 75.8, ReportDetails: models.ReportDetails{Severity: models.SeverityLow, EstimatedArea: &negative}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestReportService(t)

			_, err := svc.Submit(context.Background(), tt.report)

			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestSubmit_RepositoryError(t *testing.T) {
	svc, repoMock := newTestReportService(t)
	ctx := context.Background()
	dbErr := errors.New("db is down")

	repoMock.EXPECT().InsertReport(ctx, gomock.Any()).Return(dbErr)

	_, err := svc.Submit(ctx, models.UserReport{Latitude: 30.9, Longitude: 75.8, ReportDetails: models.ReportDetails{Severity: models.SeverityCritical}})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}
