// Package prediction реализует сеточную модель риска возгораний на основе
// сезонной частоты и давности исторических обнаружений.
//
// Модель детерминирована: одинаковая история, окно и момент времени дают
// одинаковый упорядоченный список ячеек. Движок ничего не пишет в хранилище.
package prediction

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/shenikar/fire_monitoring_system/internal/models"
)

const (
	CellSizeDeg = 0.1

	// Полуширина сезонного окна в днях вокруг каждого дня прогноза
	SeasonalHalfWidthDays = 7
	daysPerYear           = 365

	frequencyWeight = 0.6
	recencyWeight   = 0.4
	recencyHalfLife = 365.0

	// Масштаб насыщения уверенности по числу обнаружений
	confidenceScale = 8.0

	hotspotQuantile = 0.1
	peakMonthShare  = 0.5

	FactorHotspot        = "historical hotspot"
	FactorPeakSeason     = "peak burning season"
	FactorRecurring      = "recurring location"
	FactorRecentActivity = "recent fire activity"
	FactorStubbleSeason  = "stubble burning season"
	FactorWheatResidue   = "wheat residue season"

	ModelName    = "seasonal-grid"
	ModelVersion = "1.0"
)

type cellKey struct {
	lat int
	lon int
}

type hit struct {
	at   time.Time
	doy  int
	year int
}

type cellStats struct {
	key            cellKey
	hits           []hit
	seasonalHits   int
	frequency      float64
	recency        float64
	predictedDay   time.Time
	probability    float64
	confidence     float64
	recurring      bool
	recentActivity bool
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// ModelInfo описывает параметры модели для ответа API
func (e *Engine) ModelInfo() map[string]string {
	return map[string]string{
		"model":             ModelName,
		"version":           ModelVersion,
		"cell_size_deg":     strconv.FormatFloat(CellSizeDeg, 'f', -1, 64),
		"seasonal_window":   fmt.Sprintf("+/-%d days", SeasonalHalfWidthDays),
		"recency_half_life": fmt.Sprintf("%.0f days", recencyHalfLife),
		"weights":           fmt.Sprintf("frequency=%.1f recency=%.1f", frequencyWeight, recencyWeight),
	}
}

// Factors перечисляет все факторы, которые могут попасть в contributing_factors
func (e *Engine) Factors() []string {
	return []string{
		FactorHotspot,
		FactorPeakSeason,
		FactorRecurring,
		FactorRecentActivity,
		FactorStubbleSeason,
		FactorWheatResidue,
	}
}

// Predict строит прогноз по ячейкам сетки. Ячейки с уверенностью ниже threshold
// отбрасываются. Пустая история даёт пустой список.
func (e *Engine) Predict(history []*models.FireRecord, window Window, now time.Time, threshold int) []models.PredictionCell {
	cells := groupByCell(history)
	if len(cells) == 0 {
		return []models.PredictionCell{}
	}

	days := window.Days()
	peakMonths := peakMonths(history)

	for _, c := range cells {
		scoreCell(c, days, now)
	}
	hotspotCutoff := hotspotCutoff(cells)

	out := make([]models.PredictionCell, 0, len(cells))
	for _, c := range cells {
		if c.confidence < float64(threshold) {
			continue
		}
		lat, lon := centroid(c.key)
		out = append(out, models.PredictionCell{
			ID:                  fmt.Sprintf("cell_%d_%d", c.key.lat, c.key.lon),
			Latitude:            lat,
			Longitude:           lon,
			Probability:         c.probability,
			Confidence:          c.confidence,
			RiskLevel:           models.RiskLevelFor(c.probability),
			ContributingFactors: factors(c, hotspotCutoff, peakMonths),
			PredictedDate:       c.predictedDay.Format(models.DateLayout),
			HistoricalHits:      len(c.hits),
		})
	}

	slices.SortFunc(out, func(a, b models.PredictionCell) int {
		if c := cmp.Compare(b.Probability, a.Probability); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Confidence, a.Confidence); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Latitude, b.Latitude); c != 0 {
			return c
		}
		return cmp.Compare(a.Longitude, b.Longitude)
	})
	return out
}

func groupByCell(history []*models.FireRecord) []*cellStats {
	byKey := make(map[cellKey]*cellStats)
	for _, rec := range history {
		key := cellKey{lat: cellIndex(rec.Latitude), lon: cellIndex(rec.Longitude)}
		c, ok := byKey[key]
		if !ok {
			c = &cellStats{key: key}
			byKey[key] = c
		}
		at := rec.AcqDatetime.UTC()
		c.hits = append(c.hits, hit{at: at, doy: at.YearDay(), year: at.Year()})
	}

	cells := make([]*cellStats, 0, len(byKey))
	for _, c := range byKey {
		cells = append(cells, c)
	}
	// Порядок обхода map не должен влиять на результат
	slices.SortFunc(cells, func(a, b *cellStats) int {
		if c := cmp.Compare(a.key.lat, b.key.lat); c != 0 {
			return c
		}
		return cmp.Compare(a.key.lon, b.key.lon)
	})
	return cells
}

func scoreCell(c *cellStats, days []time.Time, now time.Time) {
	perDay := make([]int, len(days))
	var recencySum float64
	for _, h := range c.hits {
		inWindow := false
		for i, d := range days {
			if circularDistance(h.doy, d.YearDay()) <= SeasonalHalfWidthDays {
				perDay[i]++
				inWindow = true
			}
		}
		if inWindow {
			c.seasonalHits++
		}

		age := max(now.Sub(h.at).Hours()/24, 0)
		recencySum += math.Pow(0.5, age/recencyHalfLife)
		if age <= daysPerYear {
			c.recentActivity = true
		}
	}

	n := float64(len(c.hits))
	c.frequency = float64(c.seasonalHits) / (n + 1)
	c.recency = recencySum / n
	c.probability = round1(clamp(100*(frequencyWeight*c.frequency+recencyWeight*c.recency), 0, 100))
	c.confidence = round1(100 * (1 - math.Exp(-n/confidenceScale)))

	best := 0
	for i := range perDay {
		if perDay[i] > perDay[best] {
			best = i
		}
	}
	if len(days) > 0 {
		c.predictedDay = days[best]
	}

	years := make(map[int]struct{})
	for _, h := range c.hits {
		if h.year >= now.Year()-2 && h.year <= now.Year() {
			years[h.year] = struct{}{}
		}
	}
	c.recurring = len(years) >= 2
}

// hotspotCutoff - нижняя граница верхнего дециля частот
func hotspotCutoff(cells []*cellStats) float64 {
	freqs := make([]float64, len(cells))
	for i, c := range cells {
		freqs[i] = c.frequency
	}
	slices.Sort(freqs)
	slices.Reverse(freqs)
	idx := int(math.Ceil(hotspotQuantile*float64(len(freqs)))) - 1
	return freqs[max(idx, 0)]
}

// peakMonths - месяцы, в которых число обнаружений по региону не меньше
// половины самого активного месяца
func peakMonths(history []*models.FireRecord) map[time.Month]bool {
	var counts [13]int
	busiest := 0
	for _, rec := range history {
		m := rec.AcqDatetime.UTC().Month()
		counts[m]++
		busiest = max(busiest, counts[m])
	}
	peaks := make(map[time.Month]bool)
	if busiest == 0 {
		return peaks
	}
	for m := time.January; m <= time.December; m++ {
		if float64(counts[m]) >= peakMonthShare*float64(busiest) {
			peaks[m] = true
		}
	}
	return peaks
}

func factors(c *cellStats, hotspotCutoff float64, peaks map[time.Month]bool) []string {
	out := make([]string, 0, 4)
	if c.frequency > 0 && c.frequency >= hotspotCutoff {
		out = append(out, FactorHotspot)
	}
	month := c.predictedDay.Month()
	if peaks[month] {
		out = append(out, FactorPeakSeason)
	}
	if c.recurring {
		out = append(out, FactorRecurring)
	}
	if c.recentActivity {
		out = append(out, FactorRecentActivity)
	}
	switch month {
	case time.October, time.November:
		out = append(out, FactorStubbleSeason)
	case time.April, time.May:
		out = append(out, FactorWheatResidue)
	}
	return out
}

// cellIndex - floor(x/0.1) с поправкой на погрешность представления 0.1
func cellIndex(x float64) int {
	return int(math.Floor(x/CellSizeDeg + 1e-9))
}

func centroid(k cellKey) (float64, float64) {
	return round2((float64(k.lat) + 0.5) * CellSizeDeg), round2((float64(k.lon) + 0.5) * CellSizeDeg)
}

// circularDistance - расстояние между днями года по кругу из 365 дней
func circularDistance(a, b int) int {
	d := (a - b) % daysPerYear
	if d < 0 {
		d = -d
	}
	return min(d, daysPerYear-d)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
