package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=report.go -destination=mocks/mock_report.go -package=mocks

const userReportIDPrefix = "USER_REPORTED_"

// ReportService принимает сообщения о пожарах от граждан
type ReportService interface {
	Submit(ctx context.Context, report models.UserReport) (*models.FireRecord, error)
}

type reportService struct {
	repo     FireRepository
	resolver *region.Resolver
	clock    clockwork.Clock
	logger   *logrus.Logger
}

func NewReportService(repo FireRepository, resolver *region.Resolver, clock clockwork.Clock, logger *logrus.Logger) ReportService {
	return &reportService{
		repo:     repo,
		resolver: resolver,
		clock:    clock,
		logger:   logger,
	}
}

// Submit проверяет сообщение и сохраняет его как FireRecord с источником USER_REPORTED.
// Сообщения никогда не дедуплицируются.
func (s *reportService) Submit(ctx context.Context, report models.UserReport) (*models.FireRecord, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "report",
		"method":   "Submit",
		"severity": report.Severity,
	})
	log.Info("Attempting to submit a user report")

	if err := validateReport(report); err != nil {
		log.WithError(err).Warn("User report validation failed")
		return nil, err
	}

	now := s.clock.Now().UTC()
	details := report.ReportDetails
	record := &models.FireRecord{
		ID:          userReportIDPrefix + uuid.NewString(),
		Latitude:    report.Latitude,
		Longitude:   report.Longitude,
		Brightness:  report.Severity.NominalBrightness(),
		Confidence:  models.UserReportConfidence,
		AcqDate:     now.Format(models.DateLayout),
		AcqTime:     now.Format("1504"),
		AcqDatetime: now,
		Source:      models.SourceUserReported,
		State:       s.resolver.StateFor(report.Latitude, report.Longitude),
		Report:      &details,
	}

	if err := s.repo.InsertReport(ctx, record); err != nil {
		log.WithError(err).Error("Failed to store user report in repository")
		return nil, fmt.Errorf("service: could not store user report: %w", err)
	}

	log.WithField("report_id", record.ID).Info("User report stored successfully")
	return record, nil
}

func validateReport(report models.UserReport) error {
	if !models.InEnvelope(report.Latitude, report.Longitude) {
		return fmt.Errorf("%w: coordinates %.4f,%.4f outside supported area", models.ErrValidation, report.Latitude, report.Longitude)
	}
	if _, err := models.ParseSeverity(string(report.Severity)); err != nil {
		return err
	}
	if a := report.EstimatedArea; a != nil && (*a < 0 || *a > models.MaxEstimatedAreaHectares) {
		return fmt.Errorf("%w: estimated area must be within 0-%.0f hectares", models.ErrValidation, models.MaxEstimatedAreaHectares)
	}
	return nil
}
