// Package firms реализует клиент WFS-фида спутниковых обнаружений (NASA FIRMS)
// с повторами и экспоненциальной задержкой.
package firms

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/fire_monitoring_system/internal/config"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/observability"
	"github.com/sirupsen/logrus"
)

const (
	srsName = "urn:ogc:def:crs:EPSG::4326"
	// Широта идёт первой в порядке осей EPSG:4326
	envelopeBBox = "20,68,40,88," + srsName
)

var typeNames = map[models.Source]map[models.IngestWindow]string{
	models.SourceMODIS: {
		models.WindowRecent24h: "ms:fires_modis_24hrs",
		models.WindowRecent7d:  "ms:fires_modis_7days",
	},
	models.SourceVIIRS: {
		models.WindowRecent24h: "ms:fires_snpp_24hrs",
		models.WindowRecent7d:  "ms:fires_snpp_7days",
	},
}

// TypeName возвращает имя слоя WFS для сенсора и окна
func TypeName(source models.Source, window models.IngestWindow) (string, error) {
	byWindow, ok := typeNames[source]
	if !ok {
		return "", fmt.Errorf("%w: source %s has no satellite feed", models.ErrValidation, source)
	}
	name, ok := byWindow[window]
	if !ok {
		return "", fmt.Errorf("%w: unknown ingest window %q", models.ErrValidation, window)
	}
	return name, nil
}

// Client - клиент фида. Конфигурация передаётся явно, время берётся из clock.
type Client struct {
	cfg        config.FirmsConfig
	httpClient *http.Client
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *logrus.Logger
}

func NewClient(cfg config.FirmsConfig, clock clockwork.Clock, metrics *observability.Metrics, logger *logrus.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// statusError - ответ фида с кодом, отличным от 200
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("feed responded with status %d: %s", e.code, e.body)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	var pe *parseError
	return !errors.As(err, &pe)
}

type parseError struct {
	err error
}

func (e *parseError) Error() string { return "parse feed csv: " + e.err.Error() }
func (e *parseError) Unwrap() error { return e.err }

// Fetch запрашивает обнаружения одного сенсора за окно. Сетевые ошибки, 429 и 5xx
// повторяются с экспоненциальной задержкой. После исчерпания попыток возвращается
// ошибка, оборачивающая models.ErrUpstreamUnavailable.
func (c *Client) Fetch(ctx context.Context, source models.Source, window models.IngestWindow) ([]models.RawDetection, error) {
	typeName, err := TypeName(source, window)
	if err != nil {
		return nil, err
	}
	if c.cfg.MapKey == "" {
		return nil, fmt.Errorf("%w: FIRMS map key is not configured", models.ErrUpstreamUnavailable)
	}

	log := c.logger.WithFields(logrus.Fields{
		"component": "firms",
		"source":    source,
		"window":    window,
	})
	requestURL := c.buildURL(typeName)

	maxAttempts := max(c.cfg.MaxRetries, 1)
	delay := c.cfg.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rows, err := c.fetchOnce(ctx, requestURL, source)
		if err == nil {
			c.metrics.FeedRequests.WithLabelValues(string(source), "success").Inc()
			log.WithFields(logrus.Fields{"attempt": attempt, "rows": len(rows)}).Info("Feed fetched")
			return rows, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if !retryable(err) || attempt == maxAttempts {
			break
		}

		c.metrics.FeedRetries.WithLabelValues(string(source)).Inc()
		log.WithError(err).Warnf("Feed request failed. Retrying in %v. Attempts left: %d", delay, maxAttempts-attempt)
		select {
		case <-ctx.Done():
			c.metrics.FeedRequests.WithLabelValues(string(source), "error").Inc()
			return nil, fmt.Errorf("%w: %s feed: %w", models.ErrUpstreamUnavailable, source, ctx.Err())
		case <-c.clock.After(delay):
		}
		delay = min(delay*2, c.cfg.MaxDelay)
	}

	c.metrics.FeedRequests.WithLabelValues(string(source), "error").Inc()
	log.WithError(lastErr).Error("Feed unavailable")
	return nil, fmt.Errorf("%w: %s feed: %w", models.ErrUpstreamUnavailable, source, lastErr)
}

func (c *Client) buildURL(typeName string) string {
	params := url.Values{
		"SERVICE":      {"WFS"},
		"REQUEST":      {"GetFeature"},
		"VERSION":      {"2.0.0"},
		"TYPENAME":     {typeName},
		"STARTINDEX":   {"0"},
		"COUNT":        {strconv.Itoa(c.cfg.FetchCount)},
		"SRSNAME":      {srsName},
		"BBOX":         {envelopeBBox},
		"outputformat": {"csv"},
	}
	return fmt.Sprintf("%s/%s/?%s", strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.MapKey), params.Encode())
}

func (c *Client) fetchOnce(ctx context.Context, requestURL string, source models.Source) ([]models.RawDetection, error) {
	start := c.clock.Now()
	defer func() {
		c.metrics.FeedDuration.WithLabelValues(string(source)).Observe(c.clock.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	rows, err := ParseCSV(resp.Body, source)
	if err != nil {
		return nil, &parseError{err: err}
	}
	return rows, nil
}

// ParseCSV разбирает CSV-ответ фида. Колонки ищутся по заголовку, отсутствующие
// значения остаются пустыми строками и отбрасываются при нормализации.
func ParseCSV(r io.Reader, source models.Source) ([]models.RawDetection, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []models.RawDetection{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(header)

	latIdx := cols.find("latitude", "lat")
	lonIdx := cols.find("longitude", "lon")
	if latIdx < 0 || lonIdx < 0 {
		return nil, fmt.Errorf("latitude/longitude columns not found in %v", header)
	}
	brightIdx := cols.find("brightness", "bright_ti4")
	if source == models.SourceVIIRS {
		brightIdx = cols.find("bright_ti4", "brightness")
	}
	confIdx := cols.find("confidence")
	dateIdx := cols.find("acq_date")
	timeIdx := cols.find("acq_time")
	frpIdx := cols.find("frp")
	scanIdx := cols.find("scan")
	trackIdx := cols.find("track")

	rows := make([]models.RawDetection, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Повреждённая строка не прерывает разбор остальных
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, models.RawDetection{
			Latitude:   field(record, latIdx),
			Longitude:  field(record, lonIdx),
			Brightness: field(record, brightIdx),
			Confidence: field(record, confIdx),
			AcqDate:    field(record, dateIdx),
			AcqTime:    field(record, timeIdx),
			FRP:        field(record, frpIdx),
			Scan:       field(record, scanIdx),
			Track:      field(record, trackIdx),
		})
	}
	return rows, nil
}

type columns map[string]int

func indexColumns(header []string) columns {
	cols := make(columns, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := cols[name]; !seen {
			cols[name] = i
		}
	}
	return cols
}

// find возвращает индекс первой найденной колонки или -1
func (c columns) find(names ...string) int {
	for _, n := range names {
		if i, ok := c[n]; ok {
			return i
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
