package v1

import (
	"github.com/shenikar/fire_monitoring_system/internal/models"
)

// Порог уверенности по умолчанию, если клиент его не указал
const defaultConfidenceThreshold = 70

// DTOToDetectQuery преобразует DTO запроса обнаружений в параметры сервиса
func DTOToDetectQuery(dto DetectRequest) models.DetectQuery {
	sources := make([]models.Source, len(dto.Sources))
	for i, s := range dto.Sources {
		sources[i] = models.Source(s)
	}
	return models.DetectQuery{
		RegionID:    dto.Region,
		DateRange:   dto.DateRange,
		CustomStart: dto.CustomStartDate,
		CustomEnd:   dto.CustomEndDate,
		Sources:     sources,
	}
}

// DTOToPredictQuery преобразует DTO запроса прогноза в параметры сервиса
func DTOToPredictQuery(dto PredictRequest) models.PredictQuery {
	threshold := defaultConfidenceThreshold
	if dto.ConfidenceThreshold != nil {
		threshold = *dto.ConfidenceThreshold
	}
	return models.PredictQuery{
		RegionID:            dto.Region,
		DateRange:           dto.DateRange,
		CustomStart:         dto.CustomStartDate,
		CustomEnd:           dto.CustomEndDate,
		ConfidenceThreshold: threshold,
		AllowDemoFallback:   dto.AllowDemoFallback,
	}
}

// DTOToUserReport преобразует DTO гражданского сообщения в доменную модель
func DTOToUserReport(dto ReportRequest) models.UserReport {
	return models.UserReport{
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
		ReportDetails: models.ReportDetails{
			Severity:        models.Severity(dto.Severity),
			Description:     dto.Description,
			ReporterName:    dto.ReporterName,
			ReporterContact: dto.ReporterContact,
			EstimatedArea:   dto.EstimatedArea,
			SmokeVisibility: dto.SmokeVisibility,
		},
	}
}

// ModelToFireResponse преобразует доменную модель в DTO для ответа
func ModelToFireResponse(model *models.FireRecord) *FireResponse {
	return &FireResponse{
		ID:          model.ID,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Brightness:  model.Brightness,
		Confidence:  model.Confidence,
		AcqDate:     model.AcqDate,
		AcqTime:     model.AcqTime,
		AcqDatetime: model.AcqDatetime,
		Source:      string(model.Source),
		FRP:         model.FRP,
		Scan:        model.Scan,
		Track:       model.Track,
		State:       model.State,
		Severity:    model.Severity(),
		Report:      model.Report,
	}
}

// ModelsToFireResponses преобразует слайс моделей в слайс DTO
func ModelsToFireResponses(models []*models.FireRecord) []*FireResponse {
	responses := make([]*FireResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToFireResponse(model)
	}
	return responses
}

func ModelToDetectResponse(result *models.DetectResult) *DetectResponse {
	return &DetectResponse{
		Fires:         ModelsToFireResponses(result.Fires),
		TotalCount:    result.TotalCount,
		FilteredCount: result.FilteredCount,
		Region:        result.Region,
		DateRange:     result.DateRange,
		StartDate:     result.Start.Format(models.DateLayout),
		EndDate:       result.End.Format(models.DateLayout),
	}
}

func ModelToPredictResponse(result *models.PredictionResult) *PredictResponse {
	predictions := result.Predictions
	if predictions == nil {
		predictions = []models.PredictionCell{}
	}
	return &PredictResponse{
		Predictions:         predictions,
		TotalCount:          len(predictions),
		Region:              result.Region,
		DateRange:           result.DateRange,
		WindowStart:         result.WindowStart,
		WindowEnd:           result.WindowEnd,
		ConfidenceThreshold: result.Threshold,
		Provenance:          string(result.Provenance),
		GeneratedAt:         result.GeneratedAt,
		ModelInfo:           result.ModelInfo,
	}
}
