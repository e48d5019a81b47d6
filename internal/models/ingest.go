package models

import (
	"fmt"
	"time"
)

// IngestWindow - окно выборки из внешнего спутникового фида
type IngestWindow string

const (
	WindowRecent24h IngestWindow = "recent-24h"
	WindowRecent7d  IngestWindow = "recent-7d"
)

// ParseIngestWindow проверяет окно ингестии
func ParseIngestWindow(s string) (IngestWindow, error) {
	switch IngestWindow(s) {
	case WindowRecent24h, WindowRecent7d:
		return IngestWindow(s), nil
	}
	return "", fmt.Errorf("%w: unknown ingest window %q", ErrValidation, s)
}

// IngestState - состояние цикла ингестии
type IngestState string

const (
	IngestRequesting  IngestState = "requesting"
	IngestNormalizing IngestState = "normalizing"
	IngestReconciling IngestState = "reconciling"
	IngestDone        IngestState = "done"
	IngestFailed      IngestState = "failed"
)

// UpstreamStatus описывает доступность фида в рамках цикла
type UpstreamStatus string

const (
	UpstreamOK          UpstreamStatus = "ok"
	UpstreamPartial     UpstreamStatus = "partial"
	UpstreamUnavailable UpstreamStatus = "unavailable"
)

// RawDetection - строка фида до нормализации. Пустая строка означает отсутствующее поле.
type RawDetection struct {
	Latitude   string
	Longitude  string
	Brightness string
	Confidence string
	AcqDate    string
	AcqTime    string
	FRP        string
	Scan       string
	Track      string
}

// SourceIngestStatus - итог по одному сенсору
type SourceIngestStatus struct {
	Status   UpstreamStatus `json:"status"`
	Received int            `json:"received"`
	Error    string         `json:"error,omitempty"`
}

// IngestSummary - итог цикла ингестии
type IngestSummary struct {
	Window         IngestWindow                  `json:"window"`
	State          IngestState                   `json:"state"`
	UpstreamStatus UpstreamStatus                `json:"upstream_status"`
	TotalReceived  int                           `json:"total_received"`
	Dropped        int                           `json:"dropped"`
	Inserted       int                           `json:"inserted"`
	Updated        int                           `json:"updated"`
	Duplicates     int                           `json:"duplicates"`
	Sources        map[Source]SourceIngestStatus `json:"sources"`
	StartedAt      time.Time                     `json:"started_at"`
	FinishedAt     time.Time                     `json:"finished_at"`
}
