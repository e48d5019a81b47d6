package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/fire_monitoring_system/internal/config"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/region"
	"github.com/shenikar/fire_monitoring_system/internal/service"
	"github.com/sirupsen/logrus"
)

const defaultTopPredictions = 10

type Handler struct {
	fireService       service.FireService
	ingestionService  service.IngestionService
	predictionService service.PredictionService
	reportService     service.ReportService
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
}

func NewHandler(
	fireService service.FireService,
	ingestionService service.IngestionService,
	predictionService service.PredictionService,
	reportService service.ReportService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		fireService:       fireService,
		ingestionService:  ingestionService,
		predictionService: predictionService,
		reportService:     reportService,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
	}
}

// writeError сопоставляет доменные ошибки с HTTP-статусами
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, models.ErrUnknownRegion):
		status, code = http.StatusBadRequest, "unknown_region"
	case errors.Is(err, models.ErrInvalidRange):
		status, code = http.StatusBadRequest, "invalid_range"
	case errors.Is(err, models.ErrInvalidPredictionWindow):
		status, code = http.StatusBadRequest, "invalid_prediction_window"
	case errors.Is(err, models.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, models.ErrUpstreamUnavailable):
		status, code = http.StatusServiceUnavailable, "upstream_unavailable"
	case errors.Is(err, models.ErrNoDataAvailable):
		status, code = http.StatusServiceUnavailable, "no_data_available"
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "internal server error"})
		return
	}

	log.WithError(err).Warn("Request rejected")
	c.JSON(status, ErrorResponse{Error: code, Message: err.Error()})
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: message})
}

// @Summary Run an ingestion cycle
// @Description Fetch recent detections from the satellite feed and reconcile them with stored history. Requires API key.
// @Tags Fires
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body IngestRequest true "Ingestion window"
// @Success 200 {object} models.IngestSummary
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fires/ingest [post]
func (h *Handler) ingestFires(c *gin.Context) {
	var input IngestRequest
	log := h.logger.WithField("method", "ingestFires")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		h.badRequest(c, err.Error())
		return
	}

	summary, err := h.ingestionService.Ingest(c.Request.Context(), models.IngestWindow(input.Window))
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	// Недоступность фида не ошибка запроса: клиент видит upstream_status
	c.JSON(http.StatusOK, summary)
}

// @Summary Query historical fire detections
// @Description Get stored detections for a date window within a region
// @Tags Fires
// @Accept json
// @Produce json
// @Param request body DetectRequest true "Detection query"
// @Success 200 {object} DetectResponse
// @Failure 400 {object} ErrorResponse "Invalid region, date range or sources"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fires/detect [post]
func (h *Handler) detectFires(c *gin.Context) {
	var input DetectRequest
	log := h.logger.WithField("method", "detectFires")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		h.badRequest(c, err.Error())
		return
	}

	result, err := h.fireService.Detect(c.Request.Context(), DTOToDetectQuery(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDetectResponse(result))
}

// @Summary Generate fire risk predictions
// @Description Build a grid-based risk forecast for a region and window
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body PredictRequest true "Prediction query"
// @Success 200 {object} PredictResponse
// @Failure 400 {object} ErrorResponse "Invalid region, window or threshold"
// @Failure 503 {object} ErrorResponse "Historical data unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /predictions/generate [post]
func (h *Handler) generatePredictions(c *gin.Context) {
	var input PredictRequest
	log := h.logger.WithField("method", "generatePredictions")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		h.badRequest(c, err.Error())
		return
	}

	result, err := h.predictionService.Predict(c.Request.Context(), DTOToPredictQuery(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPredictResponse(result))
}

// @Summary Get top risk cells
// @Description Get the highest-risk cells for the next seven days
// @Tags Predictions
// @Produce json
// @Param region query string false "Region id" default(all-northern-india)
// @Param n query int false "Number of cells" default(10)
// @Success 200 {object} TopPredictionsResponse
// @Failure 400 {object} ErrorResponse "Invalid region or n"
// @Failure 503 {object} ErrorResponse "Historical data unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /predictions/top [get]
func (h *Handler) topPredictions(c *gin.Context) {
	log := h.logger.WithField("method", "topPredictions")
	regionID := c.DefaultQuery("region", region.DefaultID)

	n, err := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(defaultTopPredictions)))
	if err != nil {
		h.badRequest(c, "n must be an integer")
		return
	}

	cells, err := h.predictionService.TopPredictions(c.Request.Context(), regionID, n)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, TopPredictionsResponse{Region: regionID, Predictions: cells})
}

// @Summary Get prediction model info
// @Description Get the model parameters and accepted request ranges
// @Tags Predictions
// @Produce json
// @Success 200 {object} map[string]string
// @Router /predictions/model-info [get]
func (h *Handler) getModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.predictionService.ModelInfo())
}

// @Summary List prediction factors
// @Description Get every factor that may appear in contributing_factors
// @Tags Predictions
// @Produce json
// @Success 200 {object} FactorsResponse
// @Router /predictions/factors [get]
func (h *Handler) getFactors(c *gin.Context) {
	c.JSON(http.StatusOK, FactorsResponse{Factors: h.predictionService.Factors()})
}

// @Summary Submit a citizen fire report
// @Description Store a fire reported by a citizen. Reports are never deduplicated.
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body ReportRequest true "Fire report"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reports [post]
func (h *Handler) submitReport(c *gin.Context) {
	var input ReportRequest
	log := h.logger.WithField("method", "submitReport")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		h.badRequest(c, "invalid request body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		h.badRequest(c, err.Error())
		return
	}

	record, err := h.reportService.Submit(c.Request.Context(), DTOToUserReport(input))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ReportResponse{ID: record.ID, State: record.State, CreatedAt: record.CreatedAt})
}

// @Summary Get fire statistics
// @Description Get aggregated statistics for stored detections in a region
// @Tags Fires
// @Produce json
// @Param region query string false "Region id" default(all-northern-india)
// @Success 200 {object} models.FireSummary
// @Failure 400 {object} ErrorResponse "Unknown region"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fires/statistics [get]
func (h *Handler) getStatistics(c *gin.Context) {
	log := h.logger.WithField("method", "getStatistics")

	summary, err := h.fireService.Summarize(c.Request.Context(), c.Query("region"))
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary List supported regions
// @Description Get the static region table with bounding boxes
// @Tags Fires
// @Produce json
// @Success 200 {array} region.Region
// @Router /fires/regions [get]
func (h *Handler) listRegions(c *gin.Context) {
	c.JSON(http.StatusOK, h.fireService.Regions())
}

// @Summary Get stored date range
// @Description Get the earliest and latest stored detection dates
// @Tags Fires
// @Produce json
// @Success 200 {object} models.DateRange
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fires/date-range [get]
func (h *Handler) getDateRange(c *gin.Context) {
	log := h.logger.WithField("method", "getDateRange")

	dr, err := h.fireService.AvailableDateRange(c.Request.Context())
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, dr)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
