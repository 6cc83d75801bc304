package http

import "github.com/randomtoy/cropreport-go/internal/domain"

// ReportRequestBody is the JSON body accepted by POST /v1/reports.
type ReportRequestBody struct {
	SoilType           string  `json:"soil_type"`
	Crop               string  `json:"crop"`
	CropVariant        string  `json:"crop_variant"`
	PreviousCrop       string  `json:"previous_crop"`
	SelectedFertilizer string  `json:"selected_fertilizer"`
	IrrigationMethod   string  `json:"irrigation_method"`
	AreaSizeAcres      float64 `json:"area_size_acres"`
}

func (b ReportRequestBody) toDomain() domain.ReportRequest {
	return domain.ReportRequest{
		SoilType:           b.SoilType,
		Crop:               b.Crop,
		CropVariant:        b.CropVariant,
		PreviousCrop:       b.PreviousCrop,
		SelectedFertilizer: b.SelectedFertilizer,
		IrrigationMethod:   b.IrrigationMethod,
		AreaSizeAcres:      b.AreaSizeAcres,
	}
}

// ReportResponse is the JSON shape returned by POST /v1/reports.
type ReportResponse struct {
	Report domain.ReportResult `json:"report"`
	Meta   MetaResp            `json:"meta"`
}

type MetaResp struct {
	Model     string `json:"model"`
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type ErrorResponse struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	Fields []string `json:"fields,omitempty"`
}
