package models

import "fmt"

// Severity - оценка серьёзности, которую указывает гражданин
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

const (
	MaxEstimatedAreaHectares = 1000.0

	// Гражданские сообщения не подтверждены сенсором
	UserReportConfidence = 50
)

// ParseSeverity проверяет значение серьёзности
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s), nil
	}
	return "", fmt.Errorf("%w: unknown severity %q", ErrValidation, s)
}

// NominalBrightness - условная яркость для сообщения без показаний сенсора
func (s Severity) NominalBrightness() float64 {
	switch s {
	case SeverityCritical:
		return 400
	case SeverityHigh:
		return 360
	case SeverityMedium:
		return 330
	default:
		return 300
	}
}

// ReportDetails - метаданные гражданского сообщения, хранятся вместе с FireRecord
type ReportDetails struct {
	Severity        Severity `json:"severity"`
	Description     string   `json:"description,omitempty"`
	ReporterName    string   `json:"reporter_name,omitempty"`
	ReporterContact string   `json:"reporter_contact,omitempty"`
	EstimatedArea   *float64 `json:"estimated_area,omitempty"`
	SmokeVisibility string   `json:"smoke_visibility,omitempty"`
}

// UserReport - входящее сообщение о пожаре от гражданина
type UserReport struct {
	Latitude  float64
	Longitude float64
	ReportDetails
}
