package v1

import (
	"time"

	"github.com/shenikar/fire_monitoring_system/internal/models"
)

// IngestRequest DTO для запуска цикла ингестии
// @Description DTO для запуска цикла ингестии
type IngestRequest struct {
	Window string `json:"window" validate:"required,oneof=recent-24h recent-7d"`
}

// DetectRequest DTO для запроса исторических обнаружений
// @Description DTO для запроса исторических обнаружений
type DetectRequest struct {
	Region          string   `json:"region,omitempty"`
	DateRange       string   `json:"date_range,omitempty" validate:"omitempty,oneof=24hr 7day custom"`
	CustomStartDate string   `json:"custom_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CustomEndDate   string   `json:"custom_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Sources         []string `json:"sources,omitempty" validate:"omitempty,dive,required"`
}

// FireResponse DTO с одним обнаружением
// @Description DTO с одним обнаружением
type FireResponse struct {
	ID          string                `json:"id"`
	Latitude    float64               `json:"latitude"`
	Longitude   float64               `json:"longitude"`
	Brightness  float64               `json:"brightness"`
	Confidence  int                   `json:"confidence"`
	AcqDate     string                `json:"acq_date"`
	AcqTime     string                `json:"acq_time"`
	AcqDatetime time.Time             `json:"acq_datetime"`
	Source      string                `json:"source"`
	FRP         *float64              `json:"frp,omitempty"`
	Scan        *float64              `json:"scan,omitempty"`
	Track       *float64              `json:"track,omitempty"`
	State       string                `json:"state,omitempty"`
	Severity    string                `json:"severity"`
	Report      *models.ReportDetails `json:"report,omitempty"`
}

// DetectResponse DTO с результатом запроса обнаружений
// @Description DTO с результатом запроса обнаружений
type DetectResponse struct {
	Fires         []*FireResponse `json:"fires"`
	TotalCount    int             `json:"total_count"`
	FilteredCount int             `json:"filtered_count"`
	Region        string          `json:"region"`
	DateRange     string          `json:"date_range"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
}

// PredictRequest DTO для генерации прогноза
// @Description DTO для генерации прогноза
type PredictRequest struct {
	Region              string `json:"region,omitempty"`
	DateRange           string `json:"date_range,omitempty" validate:"omitempty,oneof=next-7days next-14days next-30days custom"`
	CustomStartDate     string `json:"custom_start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CustomEndDate       string `json:"custom_end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ConfidenceThreshold *int   `json:"confidence_threshold,omitempty" validate:"omitempty,min=50,max=95"`
	AllowDemoFallback   bool   `json:"allow_demo_fallback,omitempty"`
}

// PredictResponse DTO с прогнозом
// @Description DTO с прогнозом
type PredictResponse struct {
	Predictions         []models.PredictionCell `json:"predictions"`
	TotalCount          int                     `json:"total_count"`
	Region              string                  `json:"region"`
	DateRange           string                  `json:"date_range"`
	WindowStart         string                  `json:"window_start"`
	WindowEnd           string                  `json:"window_end"`
	ConfidenceThreshold int                     `json:"confidence_threshold"`
	Provenance          string                  `json:"provenance"`
	GeneratedAt         time.Time               `json:"generated_at"`
	ModelInfo           map[string]string       `json:"model_info,omitempty"`
}

// TopPredictionsResponse DTO с наиболее рискованными ячейками
// @Description DTO с наиболее рискованными ячейками
// FactorsResponse - перечень факторов, которыми модель объясняет прогноз
type FactorsResponse struct {
	Factors []string `json:"factors"`
}

type TopPredictionsResponse struct {
	Region      string                  `json:"region"`
	Predictions []models.PredictionCell `json:"predictions"`
}

// ReportRequest DTO для сообщения о пожаре от гражданина
// @Description DTO для сообщения о пожаре от гражданина
type ReportRequest struct {
	Latitude        float64  `json:"latitude" validate:"required,latitude"`
	Longitude       float64  `json:"longitude" validate:"required,longitude"`
	Severity        string   `json:"severity" validate:"required,oneof=Low Medium High Critical"`
	Description     string   `json:"description,omitempty" validate:"max=2000"`
	ReporterName    string   `json:"reporter_name,omitempty" validate:"max=255"`
	ReporterContact string   `json:"reporter_contact,omitempty" validate:"max=255"`
	EstimatedArea   *float64 `json:"estimated_area,omitempty" validate:"omitempty,min=0,max=1000"`
	SmokeVisibility string   `json:"smoke_visibility,omitempty" validate:"max=64"`
}

// ReportResponse DTO с идентификатором принятого сообщения
// @Description DTO с идентификатором принятого сообщения
type ReportResponse struct {
	ID        string    `json:"id"`
	State     string    `json:"state,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse DTO для ответа с ошибкой
// @Description DTO для ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
