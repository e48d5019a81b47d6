package prediction

import (
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/fire_monitoring_system/internal/models"
)

// Window - прогнозное окно, обе границы включительно, полночь UTC
type Window struct {
	Start time.Time
	End   time.Time
}

// Days возвращает все дни окна по порядку
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (w Window) Len() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// ResolveWindow переводит именованное окно в даты. Предустановленные окна
// начинаются завтра, custom должно покрывать от 1 до 30 дней.
func ResolveWindow(dateRange, customStart, customEnd string, now time.Time) (Window, error) {
	today := models.TruncateDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	switch strings.ToLower(strings.TrimSpace(dateRange)) {
	case "", models.PredictionNext7Days:
		return Window{Start: tomorrow, End: today.AddDate(0, 0, 7)}, nil
	case models.PredictionNext14Days:
		return Window{Start: tomorrow, End: today.AddDate(0, 0, 14)}, nil
	case models.PredictionNext30Days:
		return Window{Start: tomorrow, End: today.AddDate(0, 0, 30)}, nil
	case models.PredictionCustom:
		if customStart == "" || customEnd == "" {
			return Window{}, fmt.Errorf("%w: custom window requires both start and end dates", models.ErrInvalidPredictionWindow)
		}
		start, err := models.ParseDate(customStart)
		if err != nil {
			return Window{}, fmt.Errorf("%w: %w", models.ErrInvalidPredictionWindow, err)
		}
		end, err := models.ParseDate(customEnd)
		if err != nil {
			return Window{}, fmt.Errorf("%w: %w", models.ErrInvalidPredictionWindow, err)
		}
		w := Window{Start: start, End: end}
		if end.Before(start) || w.Len() > models.MaxPredictionDays {
			return Window{}, fmt.Errorf("%w: window must cover 1-%d days, got %s..%s",
				models.ErrInvalidPredictionWindow, models.MaxPredictionDays, customStart, customEnd)
		}
		return w, nil
	}
	return Window{}, fmt.Errorf("%w: unknown date range %q", models.ErrInvalidPredictionWindow, dateRange)
}
