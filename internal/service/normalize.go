package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/region"
)

var errMissingField = errors.New("missing mandatory field")

// Буквенная уверенность VIIRS: low / nominal / high
var letterConfidence = map[string]int{
	"l": 30, "low": 30,
	"n": 60, "nominal": 60,
	"h": 90, "high": 90,
}

// normalizeDetection превращает строку фида в FireRecord. Строка без обязательных
// полей или за пределами поддерживаемой области отклоняется.
func normalizeDetection(raw models.RawDetection, source models.Source, resolver *region.Resolver) (*models.FireRecord, error) {
	required := []struct {
		name  string
		value string
	}{
		{"latitude", raw.Latitude},
		{"longitude", raw.Longitude},
		{"brightness", raw.Brightness},
		{"confidence", raw.Confidence},
		{"acq_date", raw.AcqDate},
		{"acq_time", raw.AcqTime},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: %s", errMissingField, f.name)
		}
	}

	lat, err := parseFloat(raw.Latitude)
	if err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	lon, err := parseFloat(raw.Longitude)
	if err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}
	if !models.InEnvelope(lat, lon) {
		return nil, fmt.Errorf("coordinates %.4f,%.4f outside supported area", lat, lon)
	}

	brightness, err := parseFloat(raw.Brightness)
	if err != nil {
		return nil, fmt.Errorf("brightness: %w", err)
	}
	if brightness <= 0 {
		return nil, fmt.Errorf("brightness must be positive, got %v", brightness)
	}

	confidence, err := parseConfidence(raw.Confidence)
	if err != nil {
		return nil, err
	}

	acqDate := strings.TrimSpace(raw.AcqDate)
	acqTime := models.PadAcqTime(raw.AcqTime)
	acq, err := models.ParseAcquisition(acqDate, acqTime)
	if err != nil {
		return nil, err
	}

	return &models.FireRecord{
		ID:          models.BuildRecordID(source, lat, lon, acqDate, acqTime),
		Latitude:    lat,
		Longitude:   lon,
		Brightness:  brightness,
		Confidence:  confidence,
		AcqDate:     acqDate,
		AcqTime:     acqTime,
		AcqDatetime: acq,
		Source:      source,
		FRP:         optionalFloat(raw.FRP),
		Scan:        optionalFloat(raw.Scan),
		Track:       optionalFloat(raw.Track),
		State:       resolver.StateFor(lat, lon),
	}, nil
}

func parseConfidence(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := letterConfidence[s]; ok {
		return v, nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return 0, fmt.Errorf("confidence: %w", err)
	}
	c := int(math.Round(f))
	if c < 0 || c > 100 {
		return 0, fmt.Errorf("confidence %d out of range 0-100", c)
	}
	return c, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

// optionalFloat возвращает nil для пустого или нечислового значения
func optionalFloat(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return nil
	}
	return &f
}
