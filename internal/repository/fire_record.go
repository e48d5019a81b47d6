package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/shenikar/fire_monitoring_system/internal/service"
)

// Размер одного пакета при массовой вставке
const upsertChunkSize = 500

const fireRecordColumns = `
	id,
	latitude,
	longitude,
	brightness,
	confidence,
	to_char(acq_date, 'YYYY-MM-DD') AS acq_date,
	acq_time,
	acq_datetime,
	source,
	frp,
	scan,
	track,
	COALESCE(state, '') AS state,
	COALESCE(district, '') AS district,
	report,
	created_at,
	updated_at`

// Совпадающая запись пропускается. Если ключевые поля отличаются, побеждает
// более новая acquisition_datetime, updated_at обновляется.
const upsertFireRecordQuery = `
	INSERT INTO fire_records (
		id, latitude, longitude, brightness, confidence, acq_date, acq_time,
		acq_datetime, source, frp, scan, track, state, district
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO UPDATE SET
		brightness = EXCLUDED.brightness,
		confidence = EXCLUDED.confidence,
		acq_datetime = EXCLUDED.acq_datetime,
		frp = EXCLUDED.frp,
		scan = EXCLUDED.scan,
		track = EXCLUDED.track,
		state = COALESCE(EXCLUDED.state, fire_records.state),
		district = COALESCE(EXCLUDED.district, fire_records.district),
		updated_at = NOW()
	WHERE EXCLUDED.acq_datetime >= fire_records.acq_datetime
		AND (fire_records.brightness, fire_records.confidence, fire_records.frp, fire_records.acq_datetime)
			IS DISTINCT FROM (EXCLUDED.brightness, EXCLUDED.confidence, EXCLUDED.frp, EXCLUDED.acq_datetime)
	RETURNING (xmax = 0) AS inserted;
`

type FireRepository struct {
	db *pgxpool.Pool
}

func NewFireRepository(db *pgxpool.Pool) service.FireRepository {
	return &FireRepository{db: db}
}

// UpsertMany сверяет пачку обнаружений с таблицей. Конфликты по id разрешаются внутри, не возвращаются как ошибки.
func (r *FireRepository) UpsertMany(ctx context.Context, records []*models.FireRecord) (models.UpsertResult, error) {
	var result models.UpsertResult
	for start := 0; start < len(records); start += upsertChunkSize {
		end := min(start+upsertChunkSize, len(records))
		chunk, err := r.upsertChunk(ctx, records[start:end])
		if err != nil {
			return result, err
		}
		result.Inserted += chunk.Inserted
		result.Updated += chunk.Updated
		result.Skipped += chunk.Skipped
		result.InsertedIDs = append(result.InsertedIDs, chunk.InsertedIDs...)
	}
	return result, nil
}

func (r *FireRepository) upsertChunk(ctx context.Context, records []*models.FireRecord) (models.UpsertResult, error) {
	var result models.UpsertResult
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(upsertFireRecordQuery,
			rec.ID,
			rec.Latitude,
			rec.Longitude,
			rec.Brightness,
			rec.Confidence,
			models.TruncateDay(rec.AcqDatetime),
			rec.AcqTime,
			rec.AcqDatetime,
			string(rec.Source),
			rec.FRP,
			rec.Scan,
			rec.Track,
			nullString(rec.State),
			nullString(rec.District),
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, rec := range records {
		var inserted bool
		err := br.QueryRow().Scan(&inserted)
		if err != nil {
			// Строка не вернулась: запись уже есть и не изменилась
			if errors.Is(err, pgx.ErrNoRows) {
				result.Skipped++
				continue
			}
			return result, fmt.Errorf("failed to upsert fire record %s: %w", rec.ID, err)
		}
		if inserted {
			result.Inserted++
			result.InsertedIDs = append(result.InsertedIDs, rec.ID)
		} else {
			result.Updated++
		}
	}
	return result, nil
}

// Query возвращает обнаружения за диапазон дат по указанным источникам, новые первыми
func (r *FireRepository) Query(ctx context.Context, start, end time.Time, sources []models.Source) ([]*models.FireRecord, error) {
	if err := models.ValidateQueryRange(start, end); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + fireRecordColumns + `
		FROM fire_records
		WHERE acq_date BETWEEN $1 AND $2
			AND source = ANY($3)
		ORDER BY acq_datetime DESC, id;
	`
	rows, err := r.db.Query(ctx, query, models.TruncateDay(start), models.TruncateDay(end), sourceStrings(sources))
	if err != nil {
		return nil, fmt.Errorf("failed to query fire records: %w", err)
	}
	defer rows.Close()

	return scanFireRecords(rows)
}

// ListInBounds возвращает всю историю внутри прямоугольника
func (r *FireRepository) ListInBounds(ctx context.Context, bounds region.BoundingBox, sources []models.Source) ([]*models.FireRecord, error) {
	query := `
		SELECT ` + fireRecordColumns + `
		FROM fire_records
		WHERE latitude BETWEEN $1 AND $2
			AND longitude BETWEEN $3 AND $4
			AND source = ANY($5)
		ORDER BY acq_datetime, id;
	`
	rows, err := r.db.Query(ctx, query, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon, sourceStrings(sources))
	if err != nil {
		return nil, fmt.Errorf("failed to list fire records in bounds: %w", err)
	}
	defer rows.Close()

	return scanFireRecords(rows)
}

// InsertReport сохраняет гражданское сообщение без дедупликации
func (r *FireRepository) InsertReport(ctx context.Context, record *models.FireRecord) error {
	query := `
		INSERT INTO fire_records (
			id, latitude, longitude, brightness, confidence, acq_date, acq_time,
			acq_datetime, source, state, district, report
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		record.ID,
		record.Latitude,
		record.Longitude,
		record.Brightness,
		record.Confidence,
		models.TruncateDay(record.AcqDatetime),
		record.AcqTime,
		record.AcqDatetime,
		string(record.Source),
		nullString(record.State),
		nullString(record.District),
		record.Report,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user report: %w", err)
	}
	return nil
}

// Summarize считает агрегированную статистику внутри прямоугольника
func (r *FireRepository) Summarize(ctx context.Context, bounds region.BoundingBox) (*models.FireSummary, error) {
	summary := &models.FireSummary{
		BySource:   make(map[string]int),
		ByState:    make(map[string]int),
		BySeverity: make(map[string]int),
	}
	args := []any{bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon}
	where := `WHERE latitude BETWEEN $1 AND $2 AND longitude BETWEEN $3 AND $4`

	totalsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE confidence >= $5),
			COALESCE(AVG(confidence), 0)::float8,
			COALESCE(SUM(frp), 0)::float8,
			COALESCE(to_char(MIN(acq_date), 'YYYY-MM-DD'), ''),
			COALESCE(to_char(MAX(acq_date), 'YYYY-MM-DD'), '')
		FROM fire_records ` + where + `;
	`
	err := r.db.QueryRow(ctx, totalsQuery, append(args, models.HighConfidenceThreshold)...).Scan(
		&summary.TotalFires,
		&summary.HighConfidenceFires,
		&summary.AverageConfidence,
		&summary.TotalFirePower,
		&summary.FirstDetection,
		&summary.LastDetection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize fire records: %w", err)
	}

	groupings := []struct {
		expr   string
		target map[string]int
	}{
		{expr: `source`, target: summary.BySource},
		{expr: `COALESCE(state, 'unknown')`, target: summary.ByState},
		{expr: `CASE
			WHEN frp >= 100 THEN 'critical'
			WHEN frp >= 30 THEN 'high'
			WHEN frp >= 10 THEN 'medium'
			ELSE 'low' END`, target: summary.BySeverity},
	}
	for _, g := range groupings {
		if err := r.countBy(ctx, g.expr, where, args, g.target); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func (r *FireRepository) countBy(ctx context.Context, expr, where string, args []any, target map[string]int) error {
	query := `SELECT ` + expr + ` AS bucket, COUNT(*) FROM fire_records ` + where + ` GROUP BY bucket;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to group fire records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bucket string
			count  int
		)
		if err := rows.Scan(&bucket, &count); err != nil {
			return fmt.Errorf("failed to scan group row: %w", err)
		}
		target[bucket] = count
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error group iteration: %w", err)
	}
	return nil
}

// AvailableDateRange возвращает границы хранимой истории
func (r *FireRepository) AvailableDateRange(ctx context.Context) (*models.DateRange, error) {
	query := `
		SELECT
			COALESCE(to_char(MIN(acq_date), 'YYYY-MM-DD'), ''),
			COALESCE(to_char(MAX(acq_date), 'YYYY-MM-DD'), ''),
			COUNT(*)
		FROM fire_records;
	`
	dr := &models.DateRange{}
	if err := r.db.QueryRow(ctx, query).Scan(&dr.MinDate, &dr.MaxDate, &dr.TotalCount); err != nil {
		return nil, fmt.Errorf("failed to get available date range: %w", err)
	}
	return dr, nil
}

func scanFireRecords(rows pgx.Rows) ([]*models.FireRecord, error) {
	records := make([]*models.FireRecord, 0)
	for rows.Next() {
		rec := &models.FireRecord{}
		var source string
		err := rows.Scan(
			&rec.ID,
			&rec.Latitude,
			&rec.Longitude,
			&rec.Brightness,
			&rec.Confidence,
			&rec.AcqDate,
			&rec.AcqTime,
			&rec.AcqDatetime,
			&source,
			&rec.FRP,
			&rec.Scan,
			&rec.Track,
			&rec.State,
			&rec.District,
			&rec.Report,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fire record row: %w", err)
		}
		rec.Source = models.Source(source)
		rec.AcqDatetime = rec.AcqDatetime.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return records, nil
}

func sourceStrings(sources []models.Source) []string {
	out := make([]string, len(sources))
	for i, s := range sources {
		out[i] = string(s)
	}
	return out
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
