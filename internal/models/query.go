package models

import "time"

const (
	DetectRange24h    = "24hr"
	DetectRange7Day   = "7day"
	DetectRangeCustom = "custom"
)

// DetectQuery - параметры запроса исторических обнаружений
type DetectQuery struct {
	RegionID    string
	DateRange   string
	CustomStart string
	CustomEnd   string
	Sources     []Source
}

// DetectResult - результат запроса с итоговыми счётчиками
type DetectResult struct {
	Fires         []*FireRecord `json:"fires"`
	TotalCount    int           `json:"total_count"`
	FilteredCount int           `json:"filtered_count"`
	Region        string        `json:"region"`
	DateRange     string        `json:"date_range"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
}

// FireSummary - агрегированная статистика по региону
type FireSummary struct {
	Region              string         `json:"region"`
	TotalFires          int            `json:"total_fires"`
	HighConfidenceFires int            `json:"high_confidence_fires"`
	AverageConfidence   float64        `json:"average_confidence"`
	TotalFirePower      float64        `json:"total_fire_power"`
	BySource            map[string]int `json:"sources"`
	ByState             map[string]int `json:"states"`
	BySeverity          map[string]int `json:"severity"`
	FirstDetection      string         `json:"first_detection,omitempty"`
	LastDetection       string         `json:"last_detection,omitempty"`
}

// HighConfidenceThreshold - порог "уверенного" обнаружения в статистике
const HighConfidenceThreshold = 80
