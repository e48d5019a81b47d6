package models

import "time"

// RiskLevel - порядковая шкала риска, монотонная функция вероятности
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevelFor переводит вероятность (0-100) в уровень риска
func RiskLevelFor(probability float64) RiskLevel {
	switch {
	case probability >= 90:
		return RiskCritical
	case probability >= 75:
		return RiskHigh
	case probability >= 50:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Provenance - происхождение прогноза
type Provenance string

const (
	ProvenanceHistorical Provenance = "historical"
	ProvenanceDemo       Provenance = "demo"
)

const (
	PredictionNext7Days  = "next-7days"
	PredictionNext14Days = "next-14days"
	PredictionNext30Days = "next-30days"
	PredictionCustom     = "custom"

	MaxPredictionDays      = 30
	MinConfidenceThreshold = 50
	MaxConfidenceThreshold = 95
)

// PredictionCell - прогноз для одной ячейки сетки
type PredictionCell struct {
	ID                  string    `json:"id"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Probability         float64   `json:"probability"`
	Confidence          float64   `json:"confidence"`
	RiskLevel           RiskLevel `json:"risk_level"`
	ContributingFactors []string  `json:"contributing_factors"`
	PredictedDate       string    `json:"predicted_date"`
	HistoricalHits      int       `json:"historical_hits"`
}

// PredictionResult - ответ движка прогнозов вместе с метаданными
type PredictionResult struct {
	Predictions []PredictionCell  `json:"predictions"`
	Region      string            `json:"region"`
	DateRange   string            `json:"date_range"`
	WindowStart string            `json:"window_start"`
	WindowEnd   string            `json:"window_end"`
	Threshold   int               `json:"confidence_threshold"`
	Provenance  Provenance        `json:"provenance"`
	GeneratedAt time.Time         `json:"generated_at"`
	ModelInfo   map[string]string `json:"model_info,omitempty"`
}

// PredictQuery - параметры запроса прогноза
type PredictQuery struct {
	RegionID            string
	DateRange           string
	CustomStart         string
	CustomEnd           string
	ConfidenceThreshold int
	AllowDemoFallback   bool
}
