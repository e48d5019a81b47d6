package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// Границы поддерживаемой географической области
	EnvelopeMinLat = 20.0
	EnvelopeMaxLat = 40.0
	EnvelopeMinLon = 68.0
	EnvelopeMaxLon = 88.0

	MaxQuerySpanDays = 31
)

// Source - закрытое перечисление источников обнаружений
type Source string

const (
	SourceMODIS        Source = "MODIS"
	SourceVIIRS        Source = "VIIRS"
	SourceUserReported Source = "USER_REPORTED"
)

// SatelliteSources возвращает спутниковые источники, которые опрашивает ингестия
func SatelliteSources() []Source {
	return []Source{SourceMODIS, SourceVIIRS}
}

// AllSources возвращает все известные источники
func AllSources() []Source {
	return []Source{SourceMODIS, SourceVIIRS, SourceUserReported}
}

// ParseSource проверяет строковый идентификатор источника
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToUpper(strings.TrimSpace(s))) {
	case SourceMODIS:
		return SourceMODIS, nil
	case SourceVIIRS:
		return SourceVIIRS, nil
	case SourceUserReported:
		return SourceUserReported, nil
	}
	return "", fmt.Errorf("%w: unknown source %q", ErrValidation, s)
}

// FireRecord - одно обнаружение термической аномалии
type FireRecord struct {
	ID          string         `json:"id"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Brightness  float64        `json:"brightness"`
	Confidence  int            `json:"confidence"`
	AcqDate     string         `json:"acq_date"`
	AcqTime     string         `json:"acq_time"`
	AcqDatetime time.Time      `json:"acq_datetime"`
	Source      Source         `json:"source"`
	FRP         *float64       `json:"frp,omitempty"`
	Scan        *float64       `json:"scan,omitempty"`
	Track       *float64       `json:"track,omitempty"`
	State       string         `json:"state,omitempty"`
	District    string         `json:"district,omitempty"`
	Report      *ReportDetails `json:"report,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BuildRecordID строит стабильный идентификатор спутникового обнаружения.
// Повторная загрузка того же пролёта даёт тот же ID.
func BuildRecordID(source Source, lat, lon float64, acqDate, acqTime string) string {
	return fmt.Sprintf("%s_%.4f_%.4f_%s_%s", source, lat, lon, acqDate, acqTime)
}

// ParseAcquisition объединяет дату (YYYY-MM-DD) и время (HHMM) в UTC
func ParseAcquisition(acqDate, acqTime string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" 1504", acqDate+" "+PadAcqTime(acqTime), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse acquisition %s %s: %w", acqDate, acqTime, err)
	}
	return t, nil
}

// PadAcqTime дополняет время нулями слева до формата HHMM ("45" -> "0045")
func PadAcqTime(acqTime string) string {
	acqTime = strings.TrimSpace(acqTime)
	if len(acqTime) >= 4 {
		return acqTime
	}
	return strings.Repeat("0", 4-len(acqTime)) + acqTime
}

// InEnvelope проверяет, что координаты лежат в поддерживаемой области
func InEnvelope(lat, lon float64) bool {
	return lat >= EnvelopeMinLat && lat <= EnvelopeMaxLat &&
		lon >= EnvelopeMinLon && lon <= EnvelopeMaxLon
}

// Severity возвращает категорию интенсивности по FRP
func (r *FireRecord) Severity() string {
	if r.FRP == nil {
		return "low"
	}
	switch frp := *r.FRP; {
	case frp >= 100:
		return "critical"
	case frp >= 30:
		return "high"
	case frp >= 10:
		return "medium"
	default:
		return "low"
	}
}

// UpsertResult - итог пакетной сверки с хранилищем
type UpsertResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`

	// Идентификаторы впервые вставленных записей
	InsertedIDs []string `json:"-"`
}

// DateRange - доступный диапазон дат в хранилище
type DateRange struct {
	MinDate    string `json:"min_date"`
	MaxDate    string `json:"max_date"`
	TotalCount int    `json:"total_count"`
}

// ValidateQueryRange проверяет окно исторического запроса: end >= start и не более 31 дня
func ValidateQueryRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidRange, end.Format(DateLayout), start.Format(DateLayout))
	}
	if end.Sub(start) > MaxQuerySpanDays*24*time.Hour {
		return fmt.Errorf("%w: span exceeds %d days", ErrInvalidRange, MaxQuerySpanDays)
	}
	return nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD (UTC)
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// TruncateDay отбрасывает время суток, оставляя полночь UTC
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
