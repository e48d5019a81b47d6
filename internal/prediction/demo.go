package prediction

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/region"
)

const (
	demoHotspots    = 40
	demoYears       = 3
	demoMinHitsYear = 2
	demoMaxHitsYear = 5
)

// DemoHistory генерирует синтетическую историю для региона. Генератор
// засеивается идентификатором региона и годом, поэтому результат воспроизводим.
// Используется только по явному запросу и помечается Provenance=demo.
func DemoHistory(reg region.Region, now time.Time) []*models.FireRecord {
	h := fnv.New64a()
	h.Write([]byte(reg.ID))
	rng := rand.New(rand.NewPCG(h.Sum64(), uint64(now.Year())))

	today := models.TruncateDay(now)
	b := reg.Bounds
	var history []*models.FireRecord
	for i := 0; i < demoHotspots; i++ {
		lat := b.MinLat + rng.Float64()*(b.MaxLat-b.MinLat)
		lon := b.MinLon + rng.Float64()*(b.MaxLon-b.MinLon)

		// Треть очагов привязана к ближайшим дням, остальные к сезонам сжигания стерни
		var anchor func(year int) time.Time
		switch i % 3 {
		case 0:
			anchor = func(year int) time.Time { return time.Date(year, time.October, 20, 0, 0, 0, 0, time.UTC) }
		case 1:
			anchor = func(year int) time.Time { return time.Date(year, time.April, 25, 0, 0, 0, 0, time.UTC) }
		default:
			anchor = func(year int) time.Time { return today.AddDate(year-today.Year(), 0, 7) }
		}

		for y := 1; y <= demoYears; y++ {
			year := today.Year() - y
			hits := demoMinHitsYear + rng.IntN(demoMaxHitsYear-demoMinHitsYear+1)
			for j := 0; j < hits; j++ {
				at := anchor(year).AddDate(0, 0, rng.IntN(15)-7).Add(time.Duration(rng.IntN(24*60)) * time.Minute)
				dlat := (rng.Float64() - 0.5) * 0.05
				dlon := (rng.Float64() - 0.5) * 0.05
				frp := 5 + rng.Float64()*60
				rec := &models.FireRecord{
					Latitude:    lat + dlat,
					Longitude:   lon + dlon,
					Brightness:  300 + rng.Float64()*60,
					Confidence:  50 + rng.IntN(50),
					AcqDate:     at.Format(models.DateLayout),
					AcqTime:     at.Format("1504"),
					AcqDatetime: at,
					Source:      models.SourceMODIS,
					FRP:         &frp,
				}
				rec.ID = models.BuildRecordID(rec.Source, rec.Latitude, rec.Longitude, rec.AcqDate, rec.AcqTime)
				history = append(history, rec)
			}
		}
	}
	return history
}
