package service

import (
	"context"
	"mediaplanner/internal/csvmap"
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/logger"
)

// MapCSVRequest is an uploaded ad-platform export
type MapCSVRequest struct {
	Platform    string             `json:"platform"`
	CSVContent  string             `json:"csvContent"`
	PlanSummary *model.PlanSummary `json:"planSummary,omitempty"`
}

// CsvService maps uploaded exports onto the standard schema
type CsvService struct {
	log *logger.Logger
}

func NewCsvService(log *logger.Logger) *CsvService {
	return &CsvService{log: log}
}

// MapCSV validates the upload and maps its header row
func (s *CsvService) MapCSV(ctx context.Context, req MapCSVRequest) (*model.CsvMappingResult, error) {
	if req.Platform == "" || req.CSVContent == "" {
		return nil, badRequest("missing_input", "Missing platform or CSV content")
	}
	platform, ok := csvmap.ParsePlatform(req.Platform)
	if !ok {
		return nil, badRequest("invalid_platform", "Invalid platform")
	}
	headers, err := csvmap.ReadHeaders(req.CSVContent)
	if err != nil {
		return nil, invalid("invalid_csv", err)
	}

	s.log.Debug("mapping csv columns", "platform", platform, "columns", len(headers))
	res := csvmap.Map(platform, headers, req.PlanSummary)
	return &res, nil
}
