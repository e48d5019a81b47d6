// Package docs содержит описание API в формате OpenAPI 2.0 для Swagger UI.
// Пути и схемы поддерживаются вручную вместе с аннотациями хэндлеров.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/fires/date-range": {
            "get": {
                "description": "Get the earliest and latest stored detection dates",
                "produces": ["application/json"],
                "tags": ["Fires"],
                "summary": "Get stored date range",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DateRange"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}}
                }
            }
        },
        "/fires/detect": {
            "post": {
                "description": "Get stored detections for a date window within a region",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Fires"],
                "summary": "Query historical fire detections",
                "parameters": [
                    {"description": "Detection query", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.DetectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.DetectResponse"}},
                    "400": {"description": "Invalid region, date range or sources", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}}
                }
            }
        },
        "/fires/ingest": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Fetch recent detections from the satellite feed and reconcile them with stored history. Requires API key.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Fires"],
                "summary": "Run an ingestion cycle",
                "parameters": [
                    {"description": "Ingestion window", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.IngestRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.IngestSummary"}},
                    "400": {"description": "Invalid request body or validation error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}}
                }
            }
        },
        "/fires/regions": {
            "get": {
                "description": "Get the static region table with bounding boxes",
                "produces": ["application/json"],
                "tags": ["Fires"],
                "summary": "List supported regions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/region.Region"}}}
                }
            }
        },
        "/fires/statistics": {
            "get": {
                "description": "Get aggregated statistics for stored detections in a region",
                "produces": ["application/json"],
                "tags": ["Fires"],
                "summary": "Get fire statistics",
                "parameters": [
                    {"type": "string", "default": "all-northern-india", "description": "Region id", "name": "region", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FireSummary"}},
                    "400": {"description": "Unknown region", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}}
                }
            }
        },
        "/predictions/generate": {
            "post": {
                "description": "Build a grid-based risk forecast for a region and window",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Generate fire risk predictions",
                "parameters": [
                    {"description": "Prediction query", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.PredictRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.PredictResponse"}},
                    "400": {"description": "Invalid region, window or threshold", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "503": {"description": "Historical data unavailable", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}}
                }
            }
        },
        "/predictions/factors": {
            "get": {
                "description": "Get every factor that may appear in contributing_factors",
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "List prediction factors",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.FactorsResponse"}}
                }
            }
        },
        "/predictions/model-info": {
            "get": {
                "description": "Get the model parameters and accepted request ranges",
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Get prediction model info",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/predictions/top": {
            "get": {
                "description": "Get the highest-risk cells for the next seven days",
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Get top risk cells",
                "parameters": [
                    {"type": "string", "default": "all-northern-india", "description": "Region id", "name": "region", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Number of cells", "name": "n", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/v1.TopPredictionsResponse"}},
                    "400": {"description": "Invalid region or n", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "503": {"description": "Historical data unavailable", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}}
                }
            }
        },
        "/reports": {
            "post": {
                "description": "Store a fire reported by a citizen. Reports are never deduplicated.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Reports"],
                "summary": "Submit a citizen fire report",
                "parameters": [
                    {"description": "Fire report", "name": "report", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.ReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/v1.ReportResponse"}},
                    "400": {"description": "Invalid request body or validation error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/v1.ErrorResponse"}}
                }
            }
        },
        "/system/health": {
            "get": {
                "description": "Get health status of the application",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Get application health status",
                "responses": {
                    "200": {"description": "Status OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.DateRange": {
            "type": "object",
            "properties": {
                "max_date": {"type": "string"},
                "min_date": {"type": "string"},
                "total_count": {"type": "integer"}
            }
        },
        "models.FireSummary": {
            "type": "object",
            "properties": {
                "average_confidence": {"type": "number"},
                "first_detection": {"type": "string"},
                "high_confidence_fires": {"type": "integer"},
                "last_detection": {"type": "string"},
                "region": {"type": "string"},
                "severity": {"type": "object", "additionalProperties": {"type": "integer"}},
                "sources": {"type": "object", "additionalProperties": {"type": "integer"}},
                "states": {"type": "object", "additionalProperties": {"type": "integer"}},
                "total_fire_power": {"type": "number"},
                "total_fires": {"type": "integer"}
            }
        },
        "models.IngestSummary": {
            "type": "object",
            "properties": {
                "dropped": {"type": "integer"},
                "duplicates": {"type": "integer"},
                "finished_at": {"type": "string"},
                "inserted": {"type": "integer"},
                "sources": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.SourceIngestStatus"}},
                "started_at": {"type": "string"},
                "state": {"type": "string", "enum": ["requesting", "normalizing", "reconciling", "done", "failed"]},
                "total_received": {"type": "integer"},
                "updated": {"type": "integer"},
                "upstream_status": {"type": "string", "enum": ["ok", "partial", "unavailable"]},
                "window": {"type": "string", "enum": ["recent-24h", "recent-7d"]}
            }
        },
        "models.PredictionCell": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number"},
                "contributing_factors": {"type": "array", "items": {"type": "string"}},
                "historical_hits": {"type": "integer"},
                "id": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "predicted_date": {"type": "string"},
                "probability": {"type": "number"},
                "risk_level": {"type": "string", "enum": ["low", "medium", "high", "critical"]}
            }
        },
        "models.ReportDetails": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "estimated_area": {"type": "number"},
                "reporter_contact": {"type": "string"},
                "reporter_name": {"type": "string"},
                "severity": {"type": "string", "enum": ["Low", "Medium", "High", "Critical"]},
                "smoke_visibility": {"type": "string"}
            }
        },
        "models.SourceIngestStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "received": {"type": "integer"},
                "status": {"type": "string", "enum": ["ok", "partial", "unavailable"]}
            }
        },
        "region.BoundingBox": {
            "type": "object",
            "properties": {
                "max_lat": {"type": "number"},
                "max_lon": {"type": "number"},
                "min_lat": {"type": "number"},
                "min_lon": {"type": "number"}
            }
        },
        "region.Region": {
            "type": "object",
            "properties": {
                "bounds": {"$ref": "#/definitions/region.BoundingBox"},
                "id": {"type": "string"},
                "kind": {"type": "string", "enum": ["state", "city", "aggregate"]},
                "label": {"type": "string"}
            }
        },
        "v1.DetectRequest": {
            "description": "DTO для запроса исторических обнаружений",
            "type": "object",
            "properties": {
                "custom_end_date": {"type": "string"},
                "custom_start_date": {"type": "string"},
                "date_range": {"type": "string", "enum": ["24hr", "7day", "custom"]},
                "region": {"type": "string"},
                "sources": {"type": "array", "items": {"type": "string"}}
            }
        },
        "v1.DetectResponse": {
            "description": "DTO с результатом запроса обнаружений",
            "type": "object",
            "properties": {
                "date_range": {"type": "string"},
                "end_date": {"type": "string"},
                "filtered_count": {"type": "integer"},
                "fires": {"type": "array", "items": {"$ref": "#/definitions/v1.FireResponse"}},
                "region": {"type": "string"},
                "start_date": {"type": "string"},
                "total_count": {"type": "integer"}
            }
        },
        "v1.ErrorResponse": {
            "description": "DTO для ответа с ошибкой",
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "v1.FireResponse": {
            "description": "DTO с одним обнаружением",
            "type": "object",
            "properties": {
                "acq_date": {"type": "string"},
                "acq_datetime": {"type": "string"},
                "acq_time": {"type": "string"},
                "brightness": {"type": "number"},
                "confidence": {"type": "integer"},
                "frp": {"type": "number"},
                "id": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "report": {"$ref": "#/definitions/models.ReportDetails"},
                "scan": {"type": "number"},
                "severity": {"type": "string"},
                "source": {"type": "string"},
                "state": {"type": "string"},
                "track": {"type": "number"}
            }
        },
        "v1.IngestRequest": {
            "description": "DTO для запуска цикла ингестии",
            "type": "object",
            "required": ["window"],
            "properties": {
                "window": {"type": "string", "enum": ["recent-24h", "recent-7d"]}
            }
        },
        "v1.PredictRequest": {
            "description": "DTO для генерации прогноза",
            "type": "object",
            "properties": {
                "allow_demo_fallback": {"type": "boolean"},
                "confidence_threshold": {"type": "integer", "maximum": 95, "minimum": 50},
                "custom_end_date": {"type": "string"},
                "custom_start_date": {"type": "string"},
                "date_range": {"type": "string", "enum": ["next-7days", "next-14days", "next-30days", "custom"]},
                "region": {"type": "string"}
            }
        },
        "v1.PredictResponse": {
            "description": "DTO с прогнозом",
            "type": "object",
            "properties": {
                "confidence_threshold": {"type": "integer"},
                "date_range": {"type": "string"},
                "generated_at": {"type": "string"},
                "model_info": {"type": "object", "additionalProperties": {"type": "string"}},
                "predictions": {"type": "array", "items": {"$ref": "#/definitions/models.PredictionCell"}},
                "provenance": {"type": "string"},
                "region": {"type": "string"},
                "total_count": {"type": "integer"},
                "window_end": {"type": "string"},
                "window_start": {"type": "string"}
            }
        },
        "v1.ReportRequest": {
            "description": "DTO для сообщения о пожаре от гражданина",
            "type": "object",
            "required": ["latitude", "longitude", "severity"],
            "properties": {
                "description": {"type": "string", "maxLength": 2000},
                "estimated_area": {"type": "number", "maximum": 1000, "minimum": 0},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "reporter_contact": {"type": "string", "maxLength": 255},
                "reporter_name": {"type": "string", "maxLength": 255},
                "severity": {"type": "string", "enum": ["Low", "Medium", "High", "Critical"]},
                "smoke_visibility": {"type": "string", "maxLength": 64}
            }
        },
        "v1.ReportResponse": {
            "description": "DTO с идентификатором принятого сообщения",
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "v1.FactorsResponse": {
            "type": "object",
            "properties": {
                "factors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "v1.TopPredictionsResponse": {
            "description": "DTO с наиболее рискованными ячейками",
            "type": "object",
            "properties": {
                "predictions": {"type": "array", "items": {"$ref": "#/definitions/models.PredictionCell"}},
                "region": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Fire Monitoring System API",
	Description:      "Fire detection ingestion, history queries and risk prediction for northern India.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
